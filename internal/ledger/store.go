// Package ledger owns the ordered debt collection and keeps it persisted.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/debt-discipline/debts/internal/id"
	"github.com/debt-discipline/debts/internal/kvstore"
	dlog "github.com/debt-discipline/debts/internal/log"
	"github.com/debt-discipline/debts/internal/model"
)

// Fields is the editable part of a debt as entered in a form. Numeric
// fields accept strings or numbers and are coerced, never rejected.
type Fields struct {
	Name             string
	DueDay           any
	MonthlyAmount    any
	RemainingBalance any
}

// Store is the authoritative in-memory ledger. Every mutation writes the
// whole collection to the backing byte store before returning. A Store has
// a single owner and is not safe for concurrent use.
type Store struct {
	kv    kvstore.Store
	key   string
	norm  *Normalizer
	log   *dlog.Logger
	debts []model.Debt
}

// Option configures a Store.
type Option func(*Store)

// WithNormalizer replaces the default normalizer (random UUID ids).
func WithNormalizer(n *Normalizer) Option {
	return func(s *Store) { s.norm = n }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *dlog.Logger) Option {
	return func(s *Store) { s.log = l.WithComponent(dlog.ComponentLedger) }
}

// NewStore creates an empty ledger persisted under key in kv. Call Load to
// read existing state.
func NewStore(kv kvstore.Store, key string, opts ...Option) *Store {
	s := &Store{
		kv:   kv,
		key:  key,
		norm: NewNormalizer(),
		log:  dlog.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the byte-store key the ledger is persisted under.
func (s *Store) Key() string { return s.key }

// Load replaces the in-memory collection with the persisted one, normalizing
// every record. A missing key yields an empty ledger. Unreadable or
// malformed state also yields an empty ledger; the failure is logged and
// returned for reporting, but the Store stays usable.
func (s *Store) Load() error {
	s.debts = nil
	data, err := s.kv.Get(s.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.Error("reading ledger failed", dlog.FieldOperation, dlog.OpLoad, dlog.FieldKey, s.key, dlog.FieldError, err)
		return fmt.Errorf("reading ledger: %w", err)
	}

	debts, err := s.parse(dlog.OpLoad, data)
	if err != nil {
		s.log.Error("stored ledger is malformed, starting empty", dlog.FieldOperation, dlog.OpLoad, dlog.FieldKey, s.key, dlog.FieldError, err)
		return err
	}
	s.debts = debts

	for _, ve := range Check(s.debts) {
		s.log.Warn("ledger invariant violated", dlog.FieldOperation, dlog.OpValidate, dlog.FieldDebtID, ve.DebtID, dlog.FieldError, ve.Description)
	}
	s.log.Debug("ledger loaded", dlog.FieldOperation, dlog.OpLoad, dlog.FieldCount, len(s.debts))
	return nil
}

// Persist writes the collection verbatim to the byte store.
func (s *Store) Persist() error {
	data, err := Encode(s.debts)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key, data); err != nil {
		s.log.Error("persisting ledger failed", dlog.FieldOperation, dlog.OpPersist, dlog.FieldKey, s.key, dlog.FieldError, err)
		return fmt.Errorf("persisting ledger: %w", err)
	}
	return nil
}

// Debts returns a copy of the collection in stored order.
func (s *Store) Debts() []model.Debt {
	out := make([]model.Debt, len(s.debts))
	copy(out, s.debts)
	return out
}

// Len returns the number of debts.
func (s *Store) Len() int { return len(s.debts) }

// Get returns the debt with the given id.
func (s *Store) Get(debtID string) (model.Debt, bool) {
	if i := s.index(debtID); i >= 0 {
		return s.debts[i], true
	}
	return model.Debt{}, false
}

// Resolve finds a debt by full id or unique id prefix.
func (s *Store) Resolve(prefix string) (model.Debt, error) {
	ids := make([]string, len(s.debts))
	for i, d := range s.debts {
		ids[i] = d.ID
	}
	match, err := id.MatchPrefix(ids, prefix)
	switch {
	case errors.Is(err, id.ErrAmbiguous):
		return model.Debt{}, fmt.Errorf("%w: %v", ErrAmbiguousID, err)
	case err != nil:
		return model.Debt{}, fmt.Errorf("%w: %q", ErrNotFound, prefix)
	}
	d, _ := s.Get(match)
	return d, nil
}

// Add prepends a new debt built from form fields. A blank name is rejected
// with a *ValidationError and nothing changes. The new debt starts with
// originalBalance equal to remainingBalance.
func (s *Store) Add(f Fields) (model.Debt, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return model.Debt{}, &ValidationError{Field: FieldName, Err: ErrEmptyName}
	}
	remaining := SafeNumber(f.RemainingBalance, decimal.Zero)
	d := model.Debt{
		ID:               s.norm.NewID(),
		Name:             name,
		DueDay:           DayClamp(f.DueDay),
		MonthlyAmount:    SafeNumber(f.MonthlyAmount, decimal.Zero),
		RemainingBalance: remaining,
		OriginalBalance:  remaining,
	}
	s.debts = append([]model.Debt{d}, s.debts...)
	s.log.Info("debt added", dlog.FieldOperation, dlog.OpAdd, dlog.FieldDebtID, d.ID)
	return d, s.Persist()
}

// Toggle flips the completed flag of a debt.
func (s *Store) Toggle(debtID string) (model.Debt, error) {
	i := s.index(debtID)
	if i < 0 {
		return model.Debt{}, fmt.Errorf("%w: %q", ErrNotFound, debtID)
	}
	s.debts[i].Completed = !s.debts[i].Completed
	s.log.Info("debt toggled", dlog.FieldOperation, dlog.OpToggle, dlog.FieldDebtID, debtID)
	return s.debts[i], s.Persist()
}

// Edit updates the four editable fields of a debt. Numbers that cannot be
// read keep their previous value. originalBalance is raised to the new
// remaining balance when needed so progress never goes negative.
func (s *Store) Edit(debtID string, f Fields) (model.Debt, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return model.Debt{}, &ValidationError{Field: FieldName, Err: ErrEmptyName}
	}
	i := s.index(debtID)
	if i < 0 {
		return model.Debt{}, fmt.Errorf("%w: %q", ErrNotFound, debtID)
	}

	d := s.debts[i]
	newRemaining := SafeNumber(f.RemainingBalance, d.RemainingBalance)
	newOriginal := newRemaining
	if d.OriginalBalance.IsPositive() {
		newOriginal = decimal.Max(d.OriginalBalance, newRemaining)
	}

	d.Name = name
	d.DueDay = DayClamp(f.DueDay)
	d.MonthlyAmount = SafeNumber(f.MonthlyAmount, d.MonthlyAmount)
	d.RemainingBalance = newRemaining
	d.OriginalBalance = newOriginal
	s.debts[i] = d

	s.log.Info("debt edited", dlog.FieldOperation, dlog.OpEdit, dlog.FieldDebtID, debtID)
	return d, s.Persist()
}

// Remove deletes a debt. Callers holding edit state for it must drop it.
func (s *Store) Remove(debtID string) error {
	i := s.index(debtID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, debtID)
	}
	s.debts = append(s.debts[:i:i], s.debts[i+1:]...)
	s.log.Info("debt removed", dlog.FieldOperation, dlog.OpRemove, dlog.FieldDebtID, debtID)
	return s.Persist()
}

// ClearCompleted removes every completed debt and returns the removed ones.
func (s *Store) ClearCompleted() ([]model.Debt, error) {
	var kept, removed []model.Debt
	for _, d := range s.debts {
		if d.Completed {
			removed = append(removed, d)
		} else {
			kept = append(kept, d)
		}
	}
	s.debts = kept
	s.log.Info("completed debts cleared", dlog.FieldOperation, dlog.OpClear, dlog.FieldCount, len(removed))
	return removed, s.Persist()
}

// ReplaceAll normalizes raw (a decoded list of records) and replaces the
// collection wholesale. When raw is not a list of objects nothing changes
// and a *ParseError is returned.
func (s *Store) ReplaceAll(raw any) error {
	debts, err := s.norm.NormalizeBatch(raw)
	if err != nil {
		return relabel(dlog.OpImport, err)
	}
	s.debts = debts
	return s.Persist()
}

// Import parses JSON content and replaces the ledger with it.
func (s *Store) Import(data []byte) (int, error) {
	debts, err := s.parse(dlog.OpImport, data)
	if err != nil {
		s.log.Warn("import rejected", dlog.FieldOperation, dlog.OpImport, dlog.FieldError, err)
		return 0, err
	}
	s.debts = debts
	s.log.Info("ledger imported", dlog.FieldOperation, dlog.OpImport, dlog.FieldCount, len(debts))
	return len(debts), s.Persist()
}

// Export returns the collection as pretty-printed JSON.
func (s *Store) Export() ([]byte, error) {
	return EncodePretty(s.debts)
}

func (s *Store) parse(op string, data []byte) ([]model.Debt, error) {
	raw, err := DecodeBatch(data)
	if err != nil {
		return nil, relabel(op, err)
	}
	debts, err := s.norm.NormalizeBatch(raw)
	if err != nil {
		return nil, relabel(op, err)
	}
	return debts, nil
}

func (s *Store) index(debtID string) int {
	for i, d := range s.debts {
		if d.ID == debtID {
			return i
		}
	}
	return -1
}

// relabel attributes a parse failure to the operation that hit it.
func relabel(op string, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return &ParseError{Op: op, Err: pe.Err}
	}
	return err
}
