package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmortizationPreviewFrenchMethod(t *testing.T) {
	loan := Loan{
		Principal:  12000,
		AnnualRate: 6.0,
		TermMonths: 12,
		StartDate:  ParseDate("2026-01-01"),
	}

	schedule, err := loan.AmortizationPreview()
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	// Constant payment for 12k at 6% over 12 months is 1032.80.
	assert.InDelta(t, 1032.80, schedule[0].Payment, 0.01)

	// First month interest: 12000 * 0.5% = 60.00.
	assert.InDelta(t, 60.00, schedule[0].Interest, 0.005)

	// Interest declines, principal share grows.
	assert.Greater(t, schedule[0].Interest, schedule[11].Interest)
	assert.Less(t, schedule[0].Principal, schedule[11].Principal)

	// The balance lands on exactly zero.
	assert.Zero(t, schedule[11].Balance)

	// Each row's balance is the previous minus its principal part.
	for i := 1; i < len(schedule); i++ {
		assert.InDelta(t, schedule[i-1].Balance-schedule[i].Principal, schedule[i].Balance, 0.001,
			"row %d", i)
	}

	// Dates advance monthly from the start date.
	require.True(t, schedule[0].Date.Valid)
	assert.Equal(t, "2026-02-01", schedule[0].Date.Raw)
	assert.Equal(t, "2027-01-01", schedule[11].Date.Raw)
}

func TestAmortizationPreviewZeroRate(t *testing.T) {
	loan := Loan{Principal: 1200, TermMonths: 12}

	schedule, err := loan.AmortizationPreview()
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	for _, row := range schedule {
		assert.InDelta(t, 100.0, row.Payment, 0.01)
		assert.Zero(t, row.Interest)
	}
	assert.Zero(t, schedule[11].Balance)
}

func TestAmortizationPreviewValidation(t *testing.T) {
	tests := []struct {
		name string
		loan Loan
	}{
		{name: "zero principal", loan: Loan{TermMonths: 12}},
		{name: "negative principal", loan: Loan{Principal: -5, TermMonths: 12}},
		{name: "zero term", loan: Loan{Principal: 1000}},
		{name: "negative rate", loan: Loan{Principal: 1000, TermMonths: 12, AnnualRate: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.loan.AmortizationPreview()
			assert.Error(t, err)
		})
	}
}

func TestAmortizationPreviewWithoutStartDate(t *testing.T) {
	loan := Loan{Principal: 1000, AnnualRate: 3, TermMonths: 6}

	schedule, err := loan.AmortizationPreview()
	require.NoError(t, err)
	for _, row := range schedule {
		assert.False(t, row.Date.Valid)
	}
}

func TestExpenseNormalizeDefaults(t *testing.T) {
	e := Expense{ID: "x", Name: "  Café  "}
	e.Normalize()

	assert.Equal(t, KindCotidiano, e.Kind)
	assert.Equal(t, "EUR", e.Currency)
	assert.Equal(t, "uncategorized", e.Category)
	assert.Equal(t, ProviderOther, e.Provider.Kind)
	assert.Equal(t, "Café", e.Name)
}
