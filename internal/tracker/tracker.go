// Package tracker is the surface a user interface drives: ledger mutations,
// edit state, import/export and derived views.
package tracker

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/debt-discipline/debts/internal/history"
	"github.com/debt-discipline/debts/internal/ledger"
	dlog "github.com/debt-discipline/debts/internal/log"
	"github.com/debt-discipline/debts/internal/model"
	"github.com/debt-discipline/debts/internal/projection"
	"github.com/debt-discipline/debts/internal/summary"
)

// Draft is an editable snapshot of a debt, holding form values as text.
type Draft struct {
	ID               string
	Name             string
	DueDay           string
	MonthlyAmount    string
	RemainingBalance string
}

// Fields converts the draft to ledger input.
func (d Draft) Fields() ledger.Fields {
	return ledger.Fields{
		Name:             d.Name,
		DueDay:           d.DueDay,
		MonthlyAmount:    d.MonthlyAmount,
		RemainingBalance: d.RemainingBalance,
	}
}

// Row is one line of a list view.
type Row struct {
	Debt       model.Debt
	Projection projection.Projection
	Percent    decimal.Decimal
}

// Tracker wraps a ledger with edit state, a clock and an activity recorder.
type Tracker struct {
	store    *ledger.Store
	clock    projection.Clock
	recorder history.Recorder
	log      *dlog.Logger
	editing  string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the source of "today" for projections.
func WithClock(c projection.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithRecorder records every successful mutation.
func WithRecorder(r history.Recorder) Option {
	return func(t *Tracker) { t.recorder = r }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *dlog.Logger) Option {
	return func(t *Tracker) { t.log = l.WithComponent(dlog.ComponentTracker) }
}

// New wraps a loaded store.
func New(store *ledger.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:    store,
		clock:    time.Now,
		recorder: history.Nop{},
		log:      dlog.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Store returns the underlying ledger.
func (t *Tracker) Store() *ledger.Store { return t.store }

// Now returns the tracker's notion of the current time.
func (t *Tracker) Now() time.Time { return t.clock() }

// AddDebt creates a debt from form fields.
func (t *Tracker) AddDebt(f ledger.Fields) (model.Debt, error) {
	d, err := t.store.Add(f)
	if d.ID == "" {
		return d, err
	}
	t.record(history.ActionAdd, d.ID, d.Name)
	return d, err
}

// Toggle flips a debt's completed flag.
func (t *Tracker) Toggle(debtID string) (model.Debt, error) {
	d, err := t.store.Toggle(debtID)
	if d.ID == "" {
		return d, err
	}
	t.record(history.ActionToggle, d.ID, fmt.Sprintf("completed=%t", d.Completed))
	return d, err
}

// StartEdit marks a debt as under edit and returns its form snapshot.
func (t *Tracker) StartEdit(debtID string) (Draft, error) {
	d, ok := t.store.Get(debtID)
	if !ok {
		return Draft{}, fmt.Errorf("%w: %q", ledger.ErrNotFound, debtID)
	}
	t.editing = d.ID
	return Draft{
		ID:               d.ID,
		Name:             d.Name,
		DueDay:           strconv.Itoa(d.DueDay),
		MonthlyAmount:    d.MonthlyAmount.String(),
		RemainingBalance: d.RemainingBalance.String(),
	}, nil
}

// SaveEdit applies form fields to a debt and ends the edit. A rejected
// edit keeps the edit open.
func (t *Tracker) SaveEdit(debtID string, f ledger.Fields) (model.Debt, error) {
	before, _ := t.store.Get(debtID)
	d, err := t.store.Edit(debtID, f)
	if d.ID == "" {
		return d, err
	}
	if t.editing == debtID {
		t.editing = ""
	}
	t.record(history.ActionEdit, d.ID, describeEdit(before, d))
	return d, err
}

// CancelEdit drops the edit state without changing the ledger.
func (t *Tracker) CancelEdit() {
	t.editing = ""
}

// Editing returns the id of the debt under edit.
func (t *Tracker) Editing() (string, bool) {
	return t.editing, t.editing != ""
}

// Remove deletes a debt, cancelling its edit if open.
func (t *Tracker) Remove(debtID string) error {
	d, ok := t.store.Get(debtID)
	if !ok {
		return fmt.Errorf("%w: %q", ledger.ErrNotFound, debtID)
	}
	err := t.store.Remove(debtID)
	if t.editing == debtID {
		t.editing = ""
	}
	t.record(history.ActionRemove, debtID, d.Name)
	return err
}

// ClearCompleted removes every completed debt, cancelling an open edit on
// any of them.
func (t *Tracker) ClearCompleted() (int, error) {
	removed, err := t.store.ClearCompleted()
	for _, d := range removed {
		if t.editing == d.ID {
			t.editing = ""
		}
	}
	if len(removed) > 0 {
		t.record(history.ActionClearCompleted, "", fmt.Sprintf("%d removed", len(removed)))
	}
	return len(removed), err
}

// ExportJSON returns the ledger as pretty-printed JSON.
func (t *Tracker) ExportJSON() ([]byte, error) {
	return t.store.Export()
}

// ImportJSON replaces the ledger with file contents. On a parse failure the
// ledger and edit state are untouched.
func (t *Tracker) ImportJSON(data []byte) (int, error) {
	n, err := t.store.Import(data)
	var pe *ledger.ParseError
	if errors.As(err, &pe) {
		return 0, err
	}
	if _, ok := t.store.Get(t.editing); !ok {
		t.editing = ""
	}
	t.record(history.ActionImport, "", fmt.Sprintf("%d debts", n))
	return n, err
}

// ReplaceAll replaces the ledger with already decoded records, as produced
// by the importer formats.
func (t *Tracker) ReplaceAll(raw any, source string) (int, error) {
	err := t.store.ReplaceAll(raw)
	var pe *ledger.ParseError
	if errors.As(err, &pe) {
		return 0, err
	}
	if _, ok := t.store.Get(t.editing); !ok {
		t.editing = ""
	}
	n := t.store.Len()
	t.record(history.ActionImport, "", fmt.Sprintf("%d debts from %s", n, source))
	return n, err
}

// Summary aggregates the whole ledger as of now.
func (t *Tracker) Summary() summary.Summary {
	return summary.Summarize(t.store.Debts(), t.clock())
}

// Projection estimates payoff for one debt as of now.
func (t *Tracker) Projection(d model.Debt) projection.Projection {
	return projection.Project(d.RemainingBalance, d.MonthlyAmount, d.DueDay, t.clock())
}

// List returns the debts selected and ordered by view, with projections.
func (t *Tracker) List(view ledger.View) []Row {
	debts := view.Apply(t.store.Debts())
	rows := make([]Row, len(debts))
	for i, d := range debts {
		rows[i] = Row{
			Debt:       d,
			Projection: t.Projection(d),
			Percent:    summary.Percent(d.OriginalBalance, d.RemainingBalance),
		}
	}
	return rows
}

// Resolve finds a debt by id or unique id prefix.
func (t *Tracker) Resolve(prefix string) (model.Debt, error) {
	return t.store.Resolve(prefix)
}

func (t *Tracker) record(action, debtID, details string) {
	if err := t.recorder.Record(action, debtID, details); err != nil {
		t.log.Warn("recording history failed", dlog.FieldOperation, action, dlog.FieldDebtID, debtID, dlog.FieldError, err)
	}
}

func describeEdit(before, after model.Debt) string {
	s := fmt.Sprintf("remaining %s -> %s", before.RemainingBalance, after.RemainingBalance)
	if !after.OriginalBalance.Equal(before.OriginalBalance) {
		s += fmt.Sprintf(", original %s -> %s", before.OriginalBalance, after.OriginalBalance)
	}
	return s
}
