// =============================================================================
// Payroll Disbursement Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - converter
//   - validation
//   - csvwriter
//
// =============================================================================

package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RAW TABLE TYPES
// =============================================================================

// Row is one spreadsheet row as untyped cell text, addressed by column index.
type Row []string

// Cell returns the text at the given column, or "" when the row is shorter.
// Workbook readers drop trailing empty cells, so short rows are normal.
func (r Row) Cell(index int) string {
	if index < 0 || index >= len(r) {
		return ""
	}
	return r[index]
}

// Table is a rectangular (possibly ragged) sheet with no header row.
type Table []Row

// =============================================================================
// RECORD TAGS AND COLUMN POSITIONS
// =============================================================================

// Record type tags found in column 0.
const (
	TagEDR = "EDR"
	TagSCR = "SCR"
)

// EDR column positions.
const (
	EDRColEmployeeID     = 1
	EDRColRoutingCode    = 3
	EDRColEmployeeIBAN   = 4
	EDRColPayStart       = 5
	EDRColPayEnd         = 6
	EDRColDaysInPeriod   = 7
	EDRColFixedIncome    = 8
	EDRColVariableIncome = 9
	EDRColLeaveDays      = 10
)

// SCR column positions.
const (
	SCRColCompanyID       = 1
	SCRColCompanyBankCode = 2
	SCRColTransferDate    = 3
	SCRColReferenceNumber = 4
	SCRColSalaryMonth     = 5
	SCRColEmployeeCount   = 6
	SCRColTotalAmount     = 7
	SCRColCurrency        = 8
)

// DateLayout is the textual form of every date in the output.
const DateLayout = "2006-01-02"

// =============================================================================
// TYPED ROWS
// =============================================================================

// EmployeeRow is a parsed EDR row.
type EmployeeRow struct {
	// SheetRow is the 1-based row number in the source sheet.
	SheetRow int

	EmployeeID   string
	RoutingCode  string
	EmployeeIBAN string
	PayStart     time.Time
	PayEnd       time.Time
	DaysInPeriod string

	// FixedIncome is decoded from a serial date cell, rounded to 6 places.
	FixedIncome Amount

	VariableIncome Amount
	LeaveDays      string
}

// Midpoint returns the instant halfway between PayStart and PayEnd.
func (r EmployeeRow) Midpoint() time.Time {
	return r.PayStart.Add(r.PayEnd.Sub(r.PayStart) / 2)
}

// SummaryRow is a parsed SCR row.
type SummaryRow struct {
	// SheetRow is the 1-based row number in the source sheet.
	SheetRow int

	CompanyID       string
	CompanyBankCode string
	TransferDate    time.Time
	ReferenceNumber string

	// MonthLabel is the raw 3-letter month label, e.g. "MAR".
	MonthLabel string

	EmployeeCount string
	TotalAmount   Amount
	Currency      string
}

// =============================================================================
// PAY PERIOD
// =============================================================================

// PayPeriod is the calendar month a payroll batch covers.
type PayPeriod struct {
	Year  int
	Month int
}

// Abbr returns the uppercase English 3-letter month abbreviation ("MAR").
func (p PayPeriod) Abbr() string {
	return strings.ToUpper(time.Month(p.Month).String()[:3])
}

// Label returns the period as MMYYYY, e.g. "032024".
func (p PayPeriod) Label() string {
	return fmt.Sprintf("%02d%04d", p.Month, p.Year)
}

func (p PayPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// =============================================================================
// VALUE TYPES
// =============================================================================

// Amount is a numeric cell value. An empty cell yields an invalid Amount,
// which renders as an empty field.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// NewAmount wraps a decimal as a valid Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Value: d, Valid: true}
}

// MarshalCSV renders the amount with exactly two decimal places. Rounding
// applies to the nearest float64, the way printf's %.2f does, so a tie such
// as 0.125 renders as "0.12".
func (a Amount) MarshalCSV() (string, error) {
	if !a.Valid {
		return "", nil
	}
	return strconv.FormatFloat(a.Value.InexactFloat64(), 'f', 2, 64), nil
}

// Date renders as YYYY-MM-DD in CSV output.
type Date time.Time

// MarshalCSV implements gocsv.TypeMarshaller.
func (d Date) MarshalCSV() (string, error) {
	return time.Time(d).Format(DateLayout), nil
}

// =============================================================================
// PARSE ERROR
// =============================================================================

// ParseError reports a cell that could not be read as a date or number.
type ParseError struct {
	// Row is the 1-based row number in the source sheet.
	Row int

	// Column is the 0-based column index.
	Column int

	// Field is the output field name the cell feeds.
	Field string

	// Value is the raw cell text.
	Value string

	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %d (%s): cannot parse %q: %v", e.Row, e.Column, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
