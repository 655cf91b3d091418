package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// UntitledName is used when a stored or imported record has no usable name.
const UntitledName = "Untitled debt"

var hundred = decimal.NewFromInt(100)

// Debt is one tracked balance with a fixed monthly payment.
type Debt struct {
	ID               string
	Name             string
	DueDay           int // 1..31
	MonthlyAmount    decimal.Decimal
	RemainingBalance decimal.Decimal
	OriginalBalance  decimal.Decimal // 100% mark for progress
	Completed        bool // manual flag, never derived from the balance
}

// debtJSON is the persisted/exported shape. Amounts are plain JSON numbers.
type debtJSON struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	DueDay           int         `json:"dueDay"`
	MonthlyAmount    json.Number `json:"monthlyAmount"`
	RemainingBalance json.Number `json:"remainingBalance"`
	OriginalBalance  json.Number `json:"originalBalance"`
	Completed        bool        `json:"completed"`
}

// MarshalJSON encodes the debt with the wire field names used by the store.
func (d Debt) MarshalJSON() ([]byte, error) {
	return json.Marshal(debtJSON{
		ID:               d.ID,
		Name:             d.Name,
		DueDay:           d.DueDay,
		MonthlyAmount:    json.Number(d.MonthlyAmount.String()),
		RemainingBalance: json.Number(d.RemainingBalance.String()),
		OriginalBalance:  json.Number(d.OriginalBalance.String()),
		Completed:        d.Completed,
	})
}

// UnmarshalJSON decodes the wire shape strictly. Lenient decoding of
// arbitrary records goes through the ledger normalizer instead.
func (d *Debt) UnmarshalJSON(data []byte) error {
	var w debtJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	amounts := make([]decimal.Decimal, 3)
	for i, n := range []json.Number{w.MonthlyAmount, w.RemainingBalance, w.OriginalBalance} {
		if n == "" {
			continue
		}
		v, err := decimal.NewFromString(n.String())
		if err != nil {
			return err
		}
		amounts[i] = v
	}
	*d = Debt{
		ID:               w.ID,
		Name:             w.Name,
		DueDay:           w.DueDay,
		MonthlyAmount:    amounts[0],
		RemainingBalance: amounts[1],
		OriginalBalance:  amounts[2],
		Completed:        w.Completed,
	}
	return nil
}

// PercentPaid returns clamp((original-remaining)/original*100, 0, 100),
// or zero when the original balance is not positive.
func PercentPaid(original, remaining decimal.Decimal) decimal.Decimal {
	if !original.IsPositive() {
		return decimal.Zero
	}
	pct := original.Sub(remaining).Div(original).Mul(hundred)
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// PercentPaid returns the debt's own progress toward payoff.
func (d Debt) PercentPaid() decimal.Decimal {
	return PercentPaid(d.OriginalBalance, d.RemainingBalance)
}

// Equal reports whether two debts hold the same values. Amounts compare
// numerically, so 100 and 100.00 are equal.
func (d Debt) Equal(o Debt) bool {
	return d.ID == o.ID &&
		d.Name == o.Name &&
		d.DueDay == o.DueDay &&
		d.MonthlyAmount.Equal(o.MonthlyAmount) &&
		d.RemainingBalance.Equal(o.RemainingBalance) &&
		d.OriginalBalance.Equal(o.OriginalBalance) &&
		d.Completed == o.Completed
}
