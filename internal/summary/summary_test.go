package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debt-discipline/debts/internal/model"
)

var today = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debt(monthly, remaining, original string, completed bool) model.Debt {
	return model.Debt{
		ID:               "id",
		Name:             "debt",
		DueDay:           15,
		MonthlyAmount:    dec(monthly),
		RemainingBalance: dec(remaining),
		OriginalBalance:  dec(original),
		Completed:        completed,
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, today)

	assert.Equal(t, 0, s.Total)
	assert.True(t, s.TotalRemaining.IsZero())
	assert.True(t, s.OverallPercent.IsZero())
	require.NotNil(t, s.Payoff.Months)
	assert.Equal(t, 0, *s.Payoff.Months, "nothing owed counts as paid off")
	assert.Nil(t, s.Payoff.PaidBy)
}

func TestSummarize_Totals(t *testing.T) {
	debts := []model.Debt{
		debt("100", "300", "1000", false),
		debt("50.50", "200", "400", true),
		debt("0", "0", "0", true),
	}
	s := Summarize(debts, today)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.CompletedCount)
	assert.Equal(t, 1, s.IncompleteCount)
	assert.True(t, s.TotalRemaining.Equal(dec("500")))
	assert.True(t, s.TotalOriginal.Equal(dec("1400")))
	assert.True(t, s.TotalMonthly.Equal(dec("150.50")))
	assert.True(t, s.TotalPaid().Equal(dec("900")))

	// 900 / 1400 * 100 = 64.28...
	assert.True(t, s.OverallPercent.Round(2).Equal(dec("64.29")), "got %s", s.OverallPercent)
}

func TestSummarize_OverallEstimateAnchorsOnToday(t *testing.T) {
	// 500 / 150.50 -> 4 months counted from today, not from any due day.
	debts := []model.Debt{
		debt("100", "300", "1000", false),
		debt("50.50", "200", "400", false),
	}
	s := Summarize(debts, today)

	require.NotNil(t, s.Payoff.Months)
	assert.Equal(t, 4, *s.Payoff.Months)
	require.NotNil(t, s.Payoff.PaidBy)
	assert.Equal(t, time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), *s.Payoff.PaidBy)
}

func TestSummarize_EstimateClampsMonthEnd(t *testing.T) {
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	s := Summarize([]model.Debt{debt("100", "100", "100", false)}, jan31)

	require.NotNil(t, s.Payoff.PaidBy)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *s.Payoff.PaidBy)
}

func TestSummarize_NoMonthlyPayment(t *testing.T) {
	s := Summarize([]model.Debt{debt("0", "100", "100", false)}, today)
	assert.Nil(t, s.Payoff.Months)
	assert.Nil(t, s.Payoff.PaidBy)
	assert.True(t, s.Payoff.Unknown())
}

func TestSummarize_PaidOff(t *testing.T) {
	s := Summarize([]model.Debt{debt("100", "0", "500", false)}, today)
	require.NotNil(t, s.Payoff.Months)
	assert.Equal(t, 0, *s.Payoff.Months)
	assert.Nil(t, s.Payoff.PaidBy)
	assert.True(t, s.OverallPercent.Equal(dec("100")))
}

func TestSummarize_PercentAlwaysInRange(t *testing.T) {
	cases := [][]model.Debt{
		{debt("10", "500", "100", false)},  // remaining above original
		{debt("10", "-50", "100", false)},  // overpaid
		{debt("10", "100", "-100", false)}, // nonsense original
		{debt("10", "0", "0", false)},
	}
	for i, debts := range cases {
		s := Summarize(debts, today)
		assert.False(t, s.OverallPercent.IsNegative(), "case %d", i)
		assert.False(t, s.OverallPercent.GreaterThan(dec("100")), "case %d", i)
	}
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(dec("200"), dec("50")).Equal(dec("75")))
	assert.True(t, Percent(dec("0"), dec("50")).IsZero())
}
