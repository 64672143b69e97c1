// =============================================================================
// Payroll Disbursement Converter - CSV Writer Module
// =============================================================================
//
// This module is responsible for rendering the typed EDR and SCR rows as the
// combined output text.
//
// OUTPUT STRUCTURE:
//
//   Type,Employee_ID,Routing_Code,Employee_IBAN,PayStart_Date,...   <- EDR header
//   EDR,E1,R1,IBAN1,2024-03-01,2024-03-15,15,0.50,100.50,2           <- EDR rows
//   SCR,C1,B1,2024-03-20,REF1,032024,1,100.50,USD                     <- SCR rows, no header
//
//   - Dates are YYYY-MM-DD
//   - Amounts carry exactly two decimal places; empty amounts stay empty
//   - Fields are quoted only when they contain a delimiter, quote or newline
//   - There is no trailing newline
//
// =============================================================================

package csvwriter

import (
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/ginjaninja78/payrollconv/internal/types"
)

// =============================================================================
// OUTPUT RECORDS
// =============================================================================

// EDRRecord is one line of the EDR section. Field order is column order.
type EDRRecord struct {
	Type           string       `csv:"Type"`
	EmployeeID     string       `csv:"Employee_ID"`
	RoutingCode    string       `csv:"Routing_Code"`
	EmployeeIBAN   string       `csv:"Employee_IBAN"`
	PayStartDate   types.Date   `csv:"PayStart_Date"`
	PayEndDate     types.Date   `csv:"PayEnd_Date"`
	DaysInPeriod   string       `csv:"Days_In_Period"`
	FixedIncome    types.Amount `csv:"Fixed_Income"`
	VariableIncome types.Amount `csv:"Variable_Income"`
	LeaveDays      string       `csv:"Leave_Days"`
}

// SCRRecord is one line of the SCR section.
type SCRRecord struct {
	Type            string       `csv:"Type"`
	CompanyID       string       `csv:"Company_ID"`
	CompanyBankCode string       `csv:"Company_Bank_Code"`
	TransferDate    types.Date   `csv:"Transfer_Date"`
	ReferenceNumber string       `csv:"Reference_Number"`
	SalaryMonth     string       `csv:"Salary_Month"`
	EmployeeCount   string       `csv:"Employee_Count"`
	TotalAmount     types.Amount `csv:"Total_Amount"`
	Currency        string       `csv:"Currency"`
}

// EDRRecords maps parsed EDR rows to output records, keeping their order.
func EDRRecords(rows []types.EmployeeRow) []EDRRecord {
	records := make([]EDRRecord, len(rows))
	for i, row := range rows {
		records[i] = EDRRecord{
			Type:           types.TagEDR,
			EmployeeID:     row.EmployeeID,
			RoutingCode:    row.RoutingCode,
			EmployeeIBAN:   row.EmployeeIBAN,
			PayStartDate:   types.Date(row.PayStart),
			PayEndDate:     types.Date(row.PayEnd),
			DaysInPeriod:   row.DaysInPeriod,
			FixedIncome:    row.FixedIncome,
			VariableIncome: row.VariableIncome,
			LeaveDays:      row.LeaveDays,
		}
	}
	return records
}

// SCRRecords maps parsed SCR rows to output records. Type is always "SCR" and
// Salary_Month always comes from the period, never from the row.
func SCRRecords(rows []types.SummaryRow, period types.PayPeriod) []SCRRecord {
	records := make([]SCRRecord, len(rows))
	for i, row := range rows {
		records[i] = SCRRecord{
			Type:            types.TagSCR,
			CompanyID:       row.CompanyID,
			CompanyBankCode: row.CompanyBankCode,
			TransferDate:    types.Date(row.TransferDate),
			ReferenceNumber: row.ReferenceNumber,
			SalaryMonth:     period.Label(),
			EmployeeCount:   row.EmployeeCount,
			TotalAmount:     row.TotalAmount,
			Currency:        row.Currency,
		}
	}
	return records
}

// =============================================================================
// RENDERING
// =============================================================================

// FormatEDR renders the EDR section with its header row.
func FormatEDR(rows []types.EmployeeRow) (string, error) {
	out, err := gocsv.MarshalString(EDRRecords(rows))
	if err != nil {
		return "", fmt.Errorf("failed to render EDR rows: %w", err)
	}
	return out, nil
}

// FormatSCR renders the SCR section without a header row.
func FormatSCR(rows []types.SummaryRow, period types.PayPeriod) (string, error) {
	out, err := gocsv.MarshalStringWithoutHeaders(SCRRecords(rows, period))
	if err != nil {
		return "", fmt.Errorf("failed to render SCR rows: %w", err)
	}
	return out, nil
}

// Combine joins the two sections: EDR text and SCR text, each stripped of
// surrounding whitespace, separated by a single newline.
func Combine(edr, scr string) string {
	return strings.TrimSpace(edr) + "\n" + strings.TrimSpace(scr)
}
