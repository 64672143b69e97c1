package csvparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/payrollconv/internal/config"
	"github.com/ginjaninja78/payrollconv/internal/types"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payroll.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func utf8Settings() config.CSVSettings {
	return config.CSVSettings{Delimiter: ",", Encoding: "utf-8"}
}

func TestReadTable_RaggedRows(t *testing.T) {
	path := writeFile(t, []byte("EDR,E1,,R1,IBAN1,45352,45366,15,0.5,100.5,2\nSCR,C1,B1,45371,REF1,MAR,1,100.50,USD\n\nnote\n"))

	table, err := ReadTable(path, utf8Settings())
	require.NoError(t, err)

	require.Len(t, table, 3)
	assert.Len(t, table[0], 11)
	assert.Len(t, table[1], 9)
	assert.Equal(t, types.Row{"note"}, table[2])
}

func TestReadTable_StripsBOM(t *testing.T) {
	path := writeFile(t, []byte("\xef\xbb\xbfEDR,E1\n"))

	table, err := ReadTable(path, utf8Settings())
	require.NoError(t, err)
	assert.Equal(t, "EDR", table[0].Cell(0))
}

func TestReadTable_SemicolonWindows1252(t *testing.T) {
	// "Müller" in windows-1252.
	path := writeFile(t, []byte("EDR;M\xfcller;\"a;b\"\r\n"))

	table, err := ReadTable(path, config.CSVSettings{Delimiter: "semicolon", Encoding: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, types.Table{{"EDR", "Müller", "a;b"}}, table)
}

func TestReadTable_Tab(t *testing.T) {
	path := writeFile(t, []byte("EDR\tE1\n"))

	table, err := ReadTable(path, config.CSVSettings{Delimiter: "tab", Encoding: "utf-8"})
	require.NoError(t, err)
	assert.Equal(t, types.Table{{"EDR", "E1"}}, table)
}

func TestReadTable_Errors(t *testing.T) {
	path := writeFile(t, []byte("EDR\n"))

	_, err := ReadTable(path, config.CSVSettings{Delimiter: ",,", Encoding: "utf-8"})
	assert.Error(t, err)

	_, err = ReadTable(path, config.CSVSettings{Delimiter: ",", Encoding: "klingon"})
	assert.Error(t, err)

	_, err = ReadTable(filepath.Join(t.TempDir(), "missing.csv"), utf8Settings())
	assert.ErrorContains(t, err, "failed to open file")
}
