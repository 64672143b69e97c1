package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payrollconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".csv", cfg.OutputSuffix)
	assert.Equal(t, "", cfg.Sheet)
	assert.Equal(t, DefaultDateLayouts, cfg.DateLayouts)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ",", cfg.CSVInput.Delimiter)
	assert.Equal(t, "utf-8", cfg.CSVInput.Encoding)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, true)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_PartialFile(t *testing.T) {
	path := writeConfig(t, `
sheet: Payroll
log_level: debug
csv_input:
  delimiter: ";"
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "Payroll", cfg.Sheet)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ";", cfg.CSVInput.Delimiter)
	assert.Equal(t, "utf-8", cfg.CSVInput.Encoding)
	assert.Equal(t, ".csv", cfg.OutputSuffix)
	assert.Equal(t, DefaultDateLayouts, cfg.DateLayouts)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "sheet: [unclosed", "failed to parse config file"},
		{"blank suffix", "output_suffix: \"  \"", "output_suffix"},
		{"bad level", "log_level: loud", "log_level"},
		{"bad delimiter", "csv_input:\n  delimiter: \"::\"", "delimiter"},
		{"bad encoding", "csv_input:\n  encoding: klingon", "encoding"},
		{"blank layout", "date_layouts: [\"2006-01-02\", \" \"]", "date_layouts[1] must not be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCSVSettings_Comma(t *testing.T) {
	tests := map[string]rune{
		",":         ',',
		";":         ';',
		"tab":       '\t',
		"\t":        '\t',
		"pipe":      '|',
		"semicolon": ';',
	}

	for in, want := range tests {
		got, err := CSVSettings{Delimiter: in}.Comma()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
