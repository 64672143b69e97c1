package types

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_Cell(t *testing.T) {
	row := Row{"EDR", "E1", ""}

	assert.Equal(t, "EDR", row.Cell(0))
	assert.Equal(t, "E1", row.Cell(1))
	assert.Equal(t, "", row.Cell(2))
	assert.Equal(t, "", row.Cell(10), "short rows read as empty")
	assert.Equal(t, "", row.Cell(-1))
}

func TestPayPeriod_AbbrAndLabel(t *testing.T) {
	tests := []struct {
		period PayPeriod
		abbr   string
		label  string
	}{
		{PayPeriod{Year: 2024, Month: 1}, "JAN", "012024"},
		{PayPeriod{Year: 2024, Month: 3}, "MAR", "032024"},
		{PayPeriod{Year: 2023, Month: 9}, "SEP", "092023"},
		{PayPeriod{Year: 2025, Month: 12}, "DEC", "122025"},
		{PayPeriod{Year: 999, Month: 5}, "MAY", "050999"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.abbr, tt.period.Abbr())
			assert.Equal(t, tt.label, tt.period.Label())
		})
	}
}

func TestEmployeeRow_Midpoint(t *testing.T) {
	row := EmployeeRow{
		PayStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PayEnd:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), row.Midpoint())

	row.PayEnd = time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), row.Midpoint())
}

func TestAmount_MarshalCSV(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		want   string
	}{
		{"empty cell", Amount{}, ""},
		{"integer", NewAmount(decimal.NewFromInt(100)), "100.00"},
		{"one decimal", NewAmount(decimal.RequireFromString("100.5")), "100.50"},
		{"float rounding", NewAmount(decimal.RequireFromString("2.675")), "2.67"},
		{"float rounding below tie", NewAmount(decimal.RequireFromString("1.005")), "1.00"},
		{"exact tie rounds to even", NewAmount(decimal.RequireFromString("0.125")), "0.12"},
		{"exact tie rounds to even up", NewAmount(decimal.RequireFromString("0.375")), "0.38"},
		{"six places", NewAmount(decimal.RequireFromString("0.123457")), "0.12"},
		{"negative", NewAmount(decimal.RequireFromString("-3.1")), "-3.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.amount.MarshalCSV()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_MarshalCSV(t *testing.T) {
	d := Date(time.Date(2024, 3, 20, 13, 45, 0, 0, time.UTC))
	got, err := d.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-20", got)
}

func TestParseError(t *testing.T) {
	cause := &strconv.NumError{Func: "ParseFloat", Num: "abc", Err: strconv.ErrSyntax}
	err := &ParseError{Row: 4, Column: 9, Field: "Variable_Income", Value: "abc", Err: cause}

	assert.Contains(t, err.Error(), "row 4")
	assert.Contains(t, err.Error(), "Variable_Income")
	assert.Contains(t, err.Error(), `"abc"`)
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
}
