// =============================================================================
// Payroll Disbursement Converter - XLSX Sheet Reader
// =============================================================================
//
// This module reads one worksheet of a payroll workbook into an untyped table.
// The sheet has no header row: every row, including anything that looks like
// a header, is returned as data and addressed by position.
//
// CELL VALUES:
//   Cells are read raw, without number formats applied. A date cell therefore
//   comes back as its serial number ("45352" for 2024-03-01), which the
//   converter decodes; text cells come back as typed.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/payrollconv/internal/types"
)

// =============================================================================
// READER OPTIONS
// =============================================================================

// Options selects what to read from the workbook.
type Options struct {
	// Sheet is the worksheet name. Empty selects the first sheet.
	Sheet string
}

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// ReadTable opens a workbook and returns every row of the selected sheet.
//
// PARAMETERS:
//   - path: The path to the XLSX/XLSM file.
//   - opts: Which sheet to read.
//
// RETURNS:
//   - The sheet as a types.Table, row 0 being the first sheet row.
//   - An error if the file cannot be opened or the sheet does not exist.
func ReadTable(path string, opts Options) (types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, opts.Sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheetName, err)
	}

	table := make(types.Table, len(rows))
	for i, row := range rows {
		table[i] = types.Row(row)
	}

	return table, nil
}

// resolveSheet returns the sheet to read, checking that a named sheet exists.
func resolveSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		first := f.GetSheetName(0)
		if first == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return first, nil
	}

	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return "", fmt.Errorf("invalid sheet name %q: %w", name, err)
	}
	if idx == -1 {
		return "", fmt.Errorf("sheet %q not found (available: %v)", name, f.GetSheetList())
	}
	return name, nil
}
