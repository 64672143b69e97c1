// =============================================================================
// Payroll Disbursement Converter - Cell Transformation
// =============================================================================
//
// This module turns untyped cell text into typed EDR and SCR rows. It is the
// only place where positional cell access happens; everything downstream works
// on types.EmployeeRow and types.SummaryRow.
//
// CELL KINDS:
//   - Text      : passed through unchanged (IDs, IBANs, counts, currency)
//   - Date      : a spreadsheet serial number ("45352", "45352.5") or a
//                 textual date matching one of the configured layouts
//   - Amount    : a decimal number; an empty cell stays empty
//   - Serial    : a date cell whose serial value carries a fraction of a day
//                 (Fixed_Income), decoded back to that fraction
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/payrollconv/internal/types"
)

// serialEpoch is day zero of the 1900 spreadsheet date system.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const secondsPerDay = 86400

var errEmptyCell = errors.New("empty cell")

// =============================================================================
// CELL PARSERS
// =============================================================================

// ParseDate interprets a cell as a date/time.
//
// PARAMETERS:
//   - value: The raw cell text.
//   - layouts: Go time layouts tried, in order, when the cell is not numeric.
//
// RETURNS:
//   - The wall-clock time in UTC.
//   - An error if the cell is empty or matches nothing.
func ParseDate(value string, layouts []string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyCell
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(serial) || math.IsInf(serial, 0) {
			return time.Time{}, fmt.Errorf("not a finite serial date")
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		return t, nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return wallClockUTC(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("no date layout matches")
}

// ParseAmount interprets a cell as a decimal number. An empty cell gives an
// invalid Amount and no error.
func ParseAmount(value string) (types.Amount, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return types.Amount{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return types.Amount{}, err
	}
	return types.NewAmount(d), nil
}

// SerialFraction converts a date/time back to its serial day count relative
// to 1899-12-30, rounded to 6 decimal places. Sub-second precision is
// discarded before the division.
func SerialFraction(t time.Time) decimal.Decimal {
	secs := wallClockUTC(t).Unix() - serialEpoch.Unix()

	days := secs / secondsPerDay
	rem := secs % secondsPerDay
	if rem < 0 {
		days--
		rem += secondsPerDay
	}

	fraction := decimal.NewFromInt(rem).Div(decimal.NewFromInt(secondsPerDay))
	return decimal.NewFromInt(days).Add(fraction).Round(6)
}

// wallClockUTC keeps the wall-clock fields of t and drops its zone.
func wallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// =============================================================================
// ROW PARSERS
// =============================================================================

// rowParser collects the first failure while reading one row, so the field
// assignments below stay linear.
type rowParser struct {
	row     SourceRow
	layouts []string
	err     error
}

func (p *rowParser) text(col int) string {
	return p.row.Cells.Cell(col)
}

func (p *rowParser) date(col int, field string) time.Time {
	if p.err != nil {
		return time.Time{}
	}
	raw := p.row.Cells.Cell(col)
	t, err := ParseDate(raw, p.layouts)
	if err != nil {
		p.fail(col, field, raw, err)
	}
	return t
}

func (p *rowParser) amount(col int, field string) types.Amount {
	if p.err != nil {
		return types.Amount{}
	}
	raw := p.row.Cells.Cell(col)
	a, err := ParseAmount(raw)
	if err != nil {
		p.fail(col, field, raw, err)
	}
	return a
}

func (p *rowParser) serial(col int, field string) types.Amount {
	t := p.date(col, field)
	if p.err != nil {
		return types.Amount{}
	}
	return types.NewAmount(SerialFraction(t))
}

func (p *rowParser) fail(col int, field, raw string, err error) {
	p.err = &types.ParseError{
		Row:    p.row.Number,
		Column: col,
		Field:  field,
		Value:  raw,
		Err:    err,
	}
}

// ParseEmployeeRows converts EDR source rows into typed rows, failing on the
// first cell that cannot be read.
func ParseEmployeeRows(rows []SourceRow, layouts []string) ([]types.EmployeeRow, error) {
	out := make([]types.EmployeeRow, 0, len(rows))
	for _, row := range rows {
		p := &rowParser{row: row, layouts: layouts}
		r := types.EmployeeRow{
			SheetRow:       row.Number,
			EmployeeID:     p.text(types.EDRColEmployeeID),
			RoutingCode:    p.text(types.EDRColRoutingCode),
			EmployeeIBAN:   p.text(types.EDRColEmployeeIBAN),
			PayStart:       p.date(types.EDRColPayStart, "PayStart_Date"),
			PayEnd:         p.date(types.EDRColPayEnd, "PayEnd_Date"),
			DaysInPeriod:   p.text(types.EDRColDaysInPeriod),
			FixedIncome:    p.serial(types.EDRColFixedIncome, "Fixed_Income"),
			VariableIncome: p.amount(types.EDRColVariableIncome, "Variable_Income"),
			LeaveDays:      p.text(types.EDRColLeaveDays),
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, r)
	}
	return out, nil
}

// ParseSummaryRows converts SCR source rows into typed rows.
func ParseSummaryRows(rows []SourceRow, layouts []string) ([]types.SummaryRow, error) {
	out := make([]types.SummaryRow, 0, len(rows))
	for _, row := range rows {
		p := &rowParser{row: row, layouts: layouts}
		r := types.SummaryRow{
			SheetRow:        row.Number,
			CompanyID:       p.text(types.SCRColCompanyID),
			CompanyBankCode: p.text(types.SCRColCompanyBankCode),
			TransferDate:    p.date(types.SCRColTransferDate, "Transfer_Date"),
			ReferenceNumber: p.text(types.SCRColReferenceNumber),
			MonthLabel:      p.text(types.SCRColSalaryMonth),
			EmployeeCount:   p.text(types.SCRColEmployeeCount),
			TotalAmount:     p.amount(types.SCRColTotalAmount, "Total_Amount"),
			Currency:        p.text(types.SCRColCurrency),
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, r)
	}
	return out, nil
}
