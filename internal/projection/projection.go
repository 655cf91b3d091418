// Package projection estimates when a balance is paid off under a fixed
// monthly payment.
package projection

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clock supplies the current time. Production code passes time.Now; tests
// pass a fixed instant.
type Clock func() time.Time

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Projection is the payoff estimate for one balance.
// Months is nil when the balance can never be paid off (no positive payment).
// PaidBy is nil when Months is nil or zero.
type Projection struct {
	Months *int
	PaidBy *time.Time
}

// PaidOff reports whether the balance is already cleared.
func (p Projection) PaidOff() bool {
	return p.Months != nil && *p.Months == 0
}

// Unknown reports whether no payoff date can be estimated.
func (p Projection) Unknown() bool {
	return p.Months == nil
}

// Project computes the payoff projection for a single debt. The first payment
// lands on the next occurrence of dueDay (today counts) and the final one
// months-1 calendar months later.
func Project(remaining, monthly decimal.Decimal, dueDay int, now time.Time) Projection {
	months, ok := MonthsToPayoff(remaining, monthly)
	if !ok {
		return Projection{}
	}
	if months == 0 {
		return Projection{Months: &months}
	}
	first := FirstPaymentDate(dueDay, now)
	paidBy := dueDate(first.Year(), first.Month()+time.Month(months-1), dueDay, first.Location())
	return Projection{Months: &months, PaidBy: &paidBy}
}

// MonthsToPayoff returns ceil(remaining/monthly). It returns (0, true) for a
// cleared balance and (0, false) when monthly is not positive.
func MonthsToPayoff(remaining, monthly decimal.Decimal) (int, bool) {
	if !remaining.IsPositive() {
		return 0, true
	}
	if !monthly.IsPositive() {
		return 0, false
	}
	q, r := remaining.QuoRem(monthly, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return int(q.IntPart()), true
}

// FirstPaymentDate returns the soonest date on or after today whose day is
// dueDay, clamped to the month's length.
func FirstPaymentDate(dueDay int, now time.Time) time.Time {
	y, m, d := now.Date()
	if d <= clampDay(y, m, dueDay) {
		return dueDate(y, m, dueDay, now.Location())
	}
	return dueDate(y, m+1, dueDay, now.Location())
}

// AddMonths advances t by n calendar months. When t's day does not exist in
// the target month the result is that month's last day (Jan 31 + 1 = Feb 28).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	ty, tm, _ := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location()).Date()
	return time.Date(ty, tm, clampDay(ty, tm, d), hh, mm, ss, t.Nanosecond(), t.Location())
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dueDate builds midnight on dueDay of the (possibly unnormalized) month.
func dueDate(year int, month time.Month, dueDay int, loc *time.Location) time.Time {
	y, m, _ := time.Date(year, month, 1, 0, 0, 0, 0, loc).Date()
	return time.Date(y, m, clampDay(y, m, dueDay), 0, 0, 0, 0, loc)
}

func clampDay(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}
	if last := DaysIn(year, month); day > last {
		return last
	}
	return day
}
