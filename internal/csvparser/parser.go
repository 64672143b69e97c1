// =============================================================================
// Payroll Disbursement Converter - CSV Sheet Reader
// =============================================================================
//
// Some upstream systems hand over the payroll sheet as a CSV export instead of
// a workbook. This module reads such an export into the same untyped table the
// XLSX reader produces, so the converter does not care which one it got.
//
// FEATURES:
//   - Configurable delimiter (comma, semicolon, pipe, tab)
//   - Character set decoding (windows-1252, shift_jis, ...) before parsing
//   - Ragged rows: each row keeps however many fields it has
//   - No header handling: row 0 is the first line of the file
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/payrollconv/internal/config"
	"github.com/ginjaninja78/payrollconv/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ReadTable reads a headerless CSV file into a table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Delimiter and encoding of the file.
//
// RETURNS:
//   - Every line of the file as a types.Row.
//   - An error if the file cannot be opened, decoded or parsed.
func ReadTable(filePath string, settings config.CSVSettings) (types.Table, error) {
	comma, err := settings.Comma()
	if err != nil {
		return nil, err
	}

	enc, err := htmlindex.Get(settings.Encoding)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", settings.Encoding, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoded := transform.NewReader(bufio.NewReader(file), enc.NewDecoder())

	csvReader := csv.NewReader(decoded)
	configureReader(csvReader, comma)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	table := make(types.Table, len(allRows))
	for i, row := range allRows {
		table[i] = types.Row(stripBOM(i, row))
	}

	return table, nil
}

// configureReader configures the CSV reader for loosely formatted exports.
func configureReader(reader *csv.Reader, comma rune) {
	reader.Comma = comma

	// Summary and employee rows have different widths.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
}

// stripBOM removes a UTF-8 byte order mark from the first cell of the file.
func stripBOM(index int, row []string) []string {
	if index == 0 && len(row) > 0 && len(row[0]) >= 3 && row[0][:3] == "\xef\xbb\xbf" {
		row[0] = row[0][3:]
	}
	return row
}
