package csvwriter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/payrollconv/internal/types"
)

var march = types.PayPeriod{Year: 2024, Month: 3}

func sampleEmployee() types.EmployeeRow {
	return types.EmployeeRow{
		EmployeeID:     "E1",
		RoutingCode:    "R1",
		EmployeeIBAN:   "IBAN1",
		PayStart:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PayEnd:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		DaysInPeriod:   "15",
		FixedIncome:    types.NewAmount(decimal.RequireFromString("0.5")),
		VariableIncome: types.NewAmount(decimal.RequireFromString("100.5")),
		LeaveDays:      "2",
	}
}

func sampleSummary() types.SummaryRow {
	return types.SummaryRow{
		CompanyID:       "C1",
		CompanyBankCode: "B1",
		TransferDate:    time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC),
		ReferenceNumber: "REF1",
		MonthLabel:      "MAR",
		EmployeeCount:   "1",
		TotalAmount:     types.NewAmount(decimal.RequireFromString("100.5")),
		Currency:        "USD",
	}
}

func TestFormatEDR(t *testing.T) {
	out, err := FormatEDR([]types.EmployeeRow{sampleEmployee()})
	require.NoError(t, err)

	assert.Equal(t,
		"Type,Employee_ID,Routing_Code,Employee_IBAN,PayStart_Date,PayEnd_Date,Days_In_Period,Fixed_Income,Variable_Income,Leave_Days\n"+
			"EDR,E1,R1,IBAN1,2024-03-01,2024-03-15,15,0.50,100.50,2\n",
		out)
}

func TestFormatEDR_HeaderOnly(t *testing.T) {
	out, err := FormatEDR(nil)
	require.NoError(t, err)
	assert.Equal(t, "Type,Employee_ID,Routing_Code,Employee_IBAN,PayStart_Date,PayEnd_Date,Days_In_Period,Fixed_Income,Variable_Income,Leave_Days\n", out)
}

func TestFormatEDR_QuotesAndEmptyAmounts(t *testing.T) {
	row := sampleEmployee()
	row.EmployeeID = `Doe, "J"`
	row.VariableIncome = types.Amount{}

	out, err := FormatEDR([]types.EmployeeRow{row})
	require.NoError(t, err)
	assert.Contains(t, out, `EDR,"Doe, ""J""",R1,IBAN1,2024-03-01,2024-03-15,15,0.50,,2`)
}

func TestFormatSCR(t *testing.T) {
	out, err := FormatSCR([]types.SummaryRow{sampleSummary()}, march)
	require.NoError(t, err)

	// The label cell is replaced by the period, time of day is dropped.
	assert.Equal(t, "SCR,C1,B1,2024-03-20,REF1,032024,1,100.50,USD\n", out)
}

func TestFormatSCR_NoRows(t *testing.T) {
	out, err := FormatSCR(nil, march)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestSCRRecords(t *testing.T) {
	records := SCRRecords([]types.SummaryRow{sampleSummary(), sampleSummary()}, march)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "SCR", r.Type)
		assert.Equal(t, "032024", r.SalaryMonth)
	}
}

func TestCombine(t *testing.T) {
	assert.Equal(t, "a\nb", Combine("a\n", "b\n"))
	assert.Equal(t, "a\nb", Combine("  a\n\n", "\nb "))
	assert.Equal(t, "a\n", Combine("a\n", ""))
}
