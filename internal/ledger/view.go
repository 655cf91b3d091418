package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/debt-discipline/debts/internal/model"
)

// Filter selects which debts a view shows.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterIncomplete Filter = "incomplete"
)

// SortKey orders a view.
type SortKey string

const (
	SortDueDay    SortKey = "dueDay"
	SortRemaining SortKey = "remaining"
	SortMonthly   SortKey = "monthly"
)

// SortDir is the sort direction.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// View is a read-side selection and ordering. It never changes the stored
// collection.
type View struct {
	Filter Filter
	Sort   SortKey
	Dir    SortDir
}

// DefaultView shows everything by due day, ascending.
func DefaultView() View {
	return View{Filter: FilterAll, Sort: SortDueDay, Dir: Asc}
}

// Apply returns the filtered, sorted debts as a new slice. Ties keep stored
// order.
func (v View) Apply(debts []model.Debt) []model.Debt {
	out := make([]model.Debt, 0, len(debts))
	for _, d := range debts {
		switch v.Filter {
		case FilterCompleted:
			if !d.Completed {
				continue
			}
		case FilterIncomplete:
			if d.Completed {
				continue
			}
		}
		out = append(out, d)
	}

	key := sortValue(v.Sort)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := key(out[i]), key(out[j])
		if v.Dir == Desc {
			return a.GreaterThan(b)
		}
		return a.LessThan(b)
	})
	return out
}

func sortValue(k SortKey) func(model.Debt) decimal.Decimal {
	switch k {
	case SortRemaining:
		return func(d model.Debt) decimal.Decimal { return d.RemainingBalance }
	case SortMonthly:
		return func(d model.Debt) decimal.Decimal { return d.MonthlyAmount }
	default:
		return func(d model.Debt) decimal.Decimal { return decimal.NewFromInt(int64(d.DueDay)) }
	}
}

// ParseFilter accepts a filter name, case-insensitively.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "incomplete", "open":
		return FilterIncomplete, nil
	}
	return "", fmt.Errorf("unknown filter %q: must be all, completed or incomplete", s)
}

// ParseSortKey accepts a sort key name, case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dueday", "due", "day":
		return SortDueDay, nil
	case "remaining", "balance":
		return SortRemaining, nil
	case "monthly", "amount":
		return SortMonthly, nil
	}
	return "", fmt.Errorf("unknown sort key %q: must be dueDay, remaining or monthly", s)
}

// ParseSortDir accepts asc or desc.
func ParseSortDir(s string) (SortDir, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q: must be asc or desc", s)
}
