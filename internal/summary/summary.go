// Package summary computes ledger-wide totals and progress.
package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/debt-discipline/debts/internal/model"
	"github.com/debt-discipline/debts/internal/projection"
)

// Summary holds the aggregate view of a ledger. It is recomputed from the
// collection on every read.
type Summary struct {
	Total           int
	CompletedCount  int
	IncompleteCount int
	TotalRemaining  decimal.Decimal
	TotalOriginal   decimal.Decimal
	TotalMonthly    decimal.Decimal
	OverallPercent  decimal.Decimal // 0..100
	// Payoff is the rough overall estimate: total remaining over total
	// monthly, counted from today rather than from any due day.
	Payoff projection.Projection
}

// TotalPaid returns TotalOriginal - TotalRemaining.
func (s Summary) TotalPaid() decimal.Decimal {
	return s.TotalOriginal.Sub(s.TotalRemaining)
}

// Percent is the per-debt progress formula, shared with the overall figure.
func Percent(original, remaining decimal.Decimal) decimal.Decimal {
	return model.PercentPaid(original, remaining)
}

// Summarize aggregates debts as of now.
func Summarize(debts []model.Debt, now time.Time) Summary {
	s := Summary{
		Total:          len(debts),
		TotalRemaining: decimal.Zero,
		TotalOriginal:  decimal.Zero,
		TotalMonthly:   decimal.Zero,
	}
	for _, d := range debts {
		if d.Completed {
			s.CompletedCount++
		}
		s.TotalRemaining = s.TotalRemaining.Add(d.RemainingBalance)
		s.TotalOriginal = s.TotalOriginal.Add(d.OriginalBalance)
		s.TotalMonthly = s.TotalMonthly.Add(d.MonthlyAmount)
	}
	s.IncompleteCount = s.Total - s.CompletedCount
	s.OverallPercent = Percent(s.TotalOriginal, s.TotalRemaining)

	if months, ok := projection.MonthsToPayoff(s.TotalRemaining, s.TotalMonthly); ok {
		s.Payoff.Months = &months
		if months > 0 {
			paidBy := projection.AddMonths(now, months)
			s.Payoff.PaidBy = &paidBy
		}
	}
	return s
}
