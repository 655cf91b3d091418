// Package money renders amounts, percentages and payoff labels for display.
package money

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is shown where no value can be estimated.
const Placeholder = "—"

// Formatter renders amounts in one currency for one locale.
type Formatter struct {
	unit    currency.Unit
	tag     language.Tag
	printer *message.Printer
	scale   int
}

// New returns a Formatter for an ISO 4217 currency code and a BCP 47
// language tag.
func New(code, lang string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", code, err)
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", lang, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return &Formatter{
		unit:    unit,
		tag:     tag,
		printer: message.NewPrinter(tag),
		scale:   scale,
	}, nil
}

// MustNew is New for known-good inputs.
func MustNew(code, lang string) *Formatter {
	f, err := New(code, lang)
	if err != nil {
		panic(err)
	}
	return f
}

// Currency returns the ISO code.
func (f *Formatter) Currency() string { return f.unit.String() }

// Symbol returns the locale's symbol for the currency, e.g. "$" or "€".
func (f *Formatter) Symbol() string {
	return f.printer.Sprint(currency.Symbol(f.unit))
}

// Format renders d with the currency symbol, locale grouping and the
// currency's standard number of decimals.
func (f *Formatter) Format(d decimal.Decimal) string {
	rounded := d.Round(int32(f.scale))
	v, _ := rounded.Abs().Float64()
	num := f.printer.Sprint(number.Decimal(v, number.Scale(f.scale)))
	if rounded.IsNegative() {
		return "-" + f.Symbol() + num
	}
	return f.Symbol() + num
}

// Plain renders d with the currency's decimals and no symbol or grouping,
// for machine-readable output.
func (f *Formatter) Plain(d decimal.Decimal) string {
	return d.StringFixed(int32(f.scale))
}

// Progress renders "<paid> paid • <remaining> remaining".
func (f *Formatter) Progress(paid, remaining decimal.Decimal) string {
	return f.Format(paid) + " paid • " + f.Format(remaining) + " remaining"
}

// Percent renders a 0..100 value as a whole percent, e.g. "42%".
func Percent(pct decimal.Decimal) string {
	return pct.Round(0).String() + "%"
}

// Months renders a months-to-payoff value.
func Months(months *int) string {
	switch {
	case months == nil:
		return Placeholder
	case *months == 0:
		return "Paid off"
	default:
		return fmt.Sprintf("%d mo", *months)
	}
}

// PaidBy renders a payoff date as month and year.
func PaidBy(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	return t.Format("Jan 2006")
}

// Bar renders a text progress bar of the given width for a 0..100 value.
func Bar(pct decimal.Decimal, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
