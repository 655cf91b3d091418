package ledger

import (
	"fmt"
	"strings"

	"github.com/debt-discipline/debts/internal/model"
)

// InvariantError describes a single invariant violation in a collection.
type InvariantError struct {
	Invariant   int
	DebtID      string
	Description string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.DebtID, e.Description)
}

// Check enforces 5 invariants on a debt collection:
//
//  1. every debt has an id
//  2. ids are unique
//  3. names are non-empty after trimming
//  4. dueDay is within 1..31
//  5. originalBalance >= remainingBalance whenever originalBalance > 0
//
// Amounts are not required to be non-negative.
func Check(debts []model.Debt) []InvariantError {
	var errs []InvariantError
	seen := make(map[string]bool, len(debts))

	for i, d := range debts {
		ref := d.ID
		if ref == "" {
			ref = fmt.Sprintf("#%d", i)
			errs = append(errs, InvariantError{Invariant: 1, DebtID: ref, Description: "missing id"})
		} else if seen[d.ID] {
			errs = append(errs, InvariantError{Invariant: 2, DebtID: ref, Description: "duplicate id"})
		}
		seen[d.ID] = true

		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, InvariantError{Invariant: 3, DebtID: ref, Description: "empty name"})
		}

		if d.DueDay < 1 || d.DueDay > 31 {
			errs = append(errs, InvariantError{
				Invariant:   4,
				DebtID:      ref,
				Description: fmt.Sprintf("due day %d outside 1..31", d.DueDay),
			})
		}

		if d.OriginalBalance.IsPositive() && d.OriginalBalance.LessThan(d.RemainingBalance) {
			errs = append(errs, InvariantError{
				Invariant:   5,
				DebtID:      ref,
				Description: fmt.Sprintf("original %s below remaining %s", d.OriginalBalance, d.RemainingBalance),
			})
		}
	}
	return errs
}
