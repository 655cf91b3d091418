package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/debt-discipline/debts/internal/id"
	"github.com/debt-discipline/debts/internal/model"
)

// Record is one raw, possibly partial or legacy-shaped, debt object.
type Record = map[string]any

// Field names one Debt attribute and the record keys it may be read from,
// in priority order.
type Field struct {
	Name    string
	Aliases []string
}

// Canonical field names.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldDueDay    = "dueDay"
	FieldMonthly   = "monthlyAmount"
	FieldRemaining = "remainingBalance"
	FieldOriginal  = "originalBalance"
	FieldCompleted = "completed"
)

// Schema lists every field with its legacy aliases. The first key holding a
// non-null value wins.
var Schema = []Field{
	{FieldID, []string{"id"}},
	{FieldName, []string{"name", "text"}},
	{FieldDueDay, []string{"dueDay"}},
	{FieldMonthly, []string{"monthlyAmount", "amount"}},
	{FieldRemaining, []string{"remainingBalance", "balance"}},
	{FieldOriginal, []string{"originalBalance", "original"}},
	{FieldCompleted, []string{"completed"}},
}

var schemaIndex = func() map[string]Field {
	m := make(map[string]Field, len(Schema))
	for _, f := range Schema {
		m[f.Name] = f
	}
	return m
}()

// Lookup returns the value of field in rec, trying each alias in order.
func Lookup(rec Record, field string) (any, bool) {
	f, ok := schemaIndex[field]
	if !ok {
		return nil, false
	}
	for _, key := range f.Aliases {
		if v, ok := rec[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Normalizer turns raw records into well-formed debts.
type Normalizer struct {
	NewID func() string
}

// NewNormalizer returns a Normalizer that assigns random UUIDs.
func NewNormalizer() *Normalizer {
	return &Normalizer{NewID: id.New}
}

// Normalize coerces rec into a Debt. It never fails: unusable values fall
// back to defaults.
func (n *Normalizer) Normalize(rec Record) model.Debt {
	d := model.Debt{ID: n.idFor(rec)}

	d.Name = model.UntitledName
	if v, ok := Lookup(rec, FieldName); ok {
		if s := strings.TrimSpace(stringify(v)); s != "" {
			d.Name = s
		}
	}

	d.DueDay = 1
	if v, ok := Lookup(rec, FieldDueDay); ok {
		d.DueDay = DayClamp(v)
	}

	monthly, _ := Lookup(rec, FieldMonthly)
	d.MonthlyAmount = SafeNumber(monthly, decimal.Zero)

	remaining, _ := Lookup(rec, FieldRemaining)
	d.RemainingBalance = SafeNumber(remaining, decimal.Zero)

	original, _ := Lookup(rec, FieldOriginal)
	d.OriginalBalance = SafeNumber(original, d.RemainingBalance)
	if !d.OriginalBalance.IsPositive() {
		d.OriginalBalance = d.RemainingBalance
	}

	if v, ok := Lookup(rec, FieldCompleted); ok {
		d.Completed = Truthy(v)
	}
	return d
}

// NormalizeBatch normalizes a decoded JSON value that must be a list of
// objects. Anything else is rejected whole. Ids repeated within the batch
// are replaced so the result always has unique ids.
func (n *Normalizer) NormalizeBatch(raw any) ([]model.Debt, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, &ParseError{Op: "normalize", Err: ErrNotArray}
	}
	debts := make([]model.Debt, 0, len(list))
	seen := make(map[string]bool, len(list))
	for i, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, &ParseError{Op: "normalize", Err: fmt.Errorf("%w: element %d is not an object", ErrInvalidJSON, i)}
		}
		d := n.Normalize(rec)
		for seen[d.ID] {
			d.ID = n.NewID()
		}
		seen[d.ID] = true
		debts = append(debts, d)
	}
	return debts, nil
}

func (n *Normalizer) idFor(rec Record) string {
	if v, ok := Lookup(rec, FieldID); ok {
		if s := stringify(v); s != "" {
			return s
		}
	}
	return n.NewID()
}

// SafeNumber converts v to a decimal. Missing, non-numeric and non-finite
// values yield fallback. A blank string is zero.
func SafeNumber(v any, fallback decimal.Decimal) decimal.Decimal {
	if d, ok := toNumber(v); ok {
		return d
	}
	return fallback
}

// DayClamp converts v to a day of month: rounded half up, clamped to 1..31.
// Non-finite input gives 1.
func DayClamp(v any) int {
	d, ok := toNumber(v)
	if !ok {
		return 1
	}
	d = d.Add(decimal.NewFromFloat(0.5)).Floor()
	switch {
	case d.LessThan(decimal.NewFromInt(1)):
		return 1
	case d.GreaterThan(decimal.NewFromInt(31)):
		return 31
	}
	return int(d.IntPart())
}

// Truthy reports whether v counts as true: non-empty strings, non-zero
// numbers, true, and any object or list.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case int:
		return x != 0
	case int64:
		return x != 0
	case decimal.Decimal:
		return !x.IsZero()
	default:
		return true
	}
}

func toNumber(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case json.Number:
		return parseNumber(x.String())
	case string:
		return parseNumber(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(x), true
	case float32:
		return toNumber(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case bool:
		if x {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	default:
		return decimal.Zero, false
	}
}

func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool, float64, int, int64:
		return fmt.Sprint(x)
	default:
		return ""
	}
}
