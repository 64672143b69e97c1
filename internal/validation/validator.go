// =============================================================================
// Payroll Disbursement Converter - Validation Engine
// =============================================================================
//
// This module checks that one spreadsheet describes exactly one payroll
// period and that the summary rows agree with it.
//
// VALIDATION STEPS:
//   1. ComputePeriod     : every EDR pay-span midpoint falls in one (year, month)
//   2. ValidateSummaries : every SCR month label equals that month's abbreviation
//   3. Reconcile         : SCR control totals against EDR rows (warnings only)
//
// ERROR HANDLING:
//   Steps 1 and 2 return typed errors that abort the conversion. Step 3 never
//   fails; it returns discrepancies for the caller to log.
//
// =============================================================================

package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/payrollconv/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// PeriodMismatchError means the EDR rows do not share a single pay period.
// Years and Months hold the distinct values found, sorted.
type PeriodMismatchError struct {
	Years  []int
	Months []int
}

// Error implements the error interface.
func (e *PeriodMismatchError) Error() string {
	if len(e.Years) == 0 {
		return "period mismatch: no EDR rows to derive a pay period from"
	}
	return fmt.Sprintf("period mismatch: EDR pay periods span years %v and months %v", e.Years, e.Months)
}

// LabelMismatch is one SCR row whose month label disagrees with the period.
type LabelMismatch struct {
	// Row is the 1-based sheet row.
	Row   int
	Label string
}

// PeriodValidationError means one or more SCR rows carry the wrong month.
type PeriodValidationError struct {
	Expected   string
	Mismatches []LabelMismatch
}

// Error implements the error interface.
func (e *PeriodValidationError) Error() string {
	parts := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		parts[i] = fmt.Sprintf("row %d has %q", m.Row, m.Label)
	}
	return fmt.Sprintf("SCR month does not match EDR period %s: %s", e.Expected, strings.Join(parts, ", "))
}

// =============================================================================
// PAY PERIOD
// =============================================================================

// ComputePeriod derives the single pay period shared by all EDR rows.
//
// PARAMETERS:
//   - rows: The parsed EDR rows.
//
// RETURNS:
//   - The (year, month) of every row's pay-span midpoint.
//   - A *PeriodMismatchError if the midpoints fall in more than one distinct
//     year or month, or if there are no rows at all.
func ComputePeriod(rows []types.EmployeeRow) (types.PayPeriod, error) {
	years := make(map[int]struct{})
	months := make(map[int]struct{})

	for _, row := range rows {
		mid := row.Midpoint()
		years[mid.Year()] = struct{}{}
		months[int(mid.Month())] = struct{}{}
	}

	year, okYear := single(years)
	month, okMonth := single(months)
	if !okYear || !okMonth {
		return types.PayPeriod{}, &PeriodMismatchError{
			Years:  sortedKeys(years),
			Months: sortedKeys(months),
		}
	}

	return types.PayPeriod{Year: year, Month: month}, nil
}

// single returns the only element of set, or false if it has any other size.
func single(set map[int]struct{}) (int, bool) {
	if len(set) != 1 {
		return 0, false
	}
	for v := range set {
		return v, true
	}
	return 0, false
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// =============================================================================
// SUMMARY ROWS
// =============================================================================

// ValidateSummaries requires each SCR month label to equal period.Abbr().
// The comparison is exact. All offending rows are reported together.
func ValidateSummaries(rows []types.SummaryRow, period types.PayPeriod) error {
	expected := period.Abbr()

	var mismatches []LabelMismatch
	for _, row := range rows {
		if row.MonthLabel != expected {
			mismatches = append(mismatches, LabelMismatch{Row: row.SheetRow, Label: row.MonthLabel})
		}
	}

	if len(mismatches) > 0 {
		return &PeriodValidationError{Expected: expected, Mismatches: mismatches}
	}
	return nil
}

// =============================================================================
// CONTROL TOTALS
// =============================================================================

// Discrepancy is a control total on an SCR row that does not match the EDR
// rows. It never fails a conversion.
type Discrepancy struct {
	Row      int
	Field    string
	Reported string
	Computed string
}

func (d Discrepancy) String() string {
	return fmt.Sprintf("row %d %s: reported %s, computed %s", d.Row, d.Field, d.Reported, d.Computed)
}

// Reconcile compares each SCR row's Employee_Count with the number of EDR
// rows and its Total_Amount with the sum of Fixed_Income and Variable_Income.
// Empty control cells are not checked.
func Reconcile(edr []types.EmployeeRow, scr []types.SummaryRow) []Discrepancy {
	count := len(edr)

	total := decimal.Zero
	for _, row := range edr {
		if row.FixedIncome.Valid {
			total = total.Add(row.FixedIncome.Value)
		}
		if row.VariableIncome.Valid {
			total = total.Add(row.VariableIncome.Value)
		}
	}
	total = total.Round(2)

	var out []Discrepancy
	for _, row := range scr {
		if reported := strings.TrimSpace(row.EmployeeCount); reported != "" {
			n, err := strconv.Atoi(reported)
			if err != nil {
				d, derr := decimal.NewFromString(reported)
				if derr == nil && d.IsInteger() {
					n, err = int(d.IntPart()), nil
				}
			}
			if err != nil || n != count {
				out = append(out, Discrepancy{
					Row:      row.SheetRow,
					Field:    "Employee_Count",
					Reported: reported,
					Computed: strconv.Itoa(count),
				})
			}
		}

		if row.TotalAmount.Valid && !row.TotalAmount.Value.Round(2).Equal(total) {
			out = append(out, Discrepancy{
				Row:      row.SheetRow,
				Field:    "Total_Amount",
				Reported: row.TotalAmount.Value.StringFixed(2),
				Computed: total.StringFixed(2),
			})
		}
	}

	return out
}
