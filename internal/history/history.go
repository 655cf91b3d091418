// Package history keeps an append-only CSV record of ledger mutations.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Actions recorded by the tracker.
const (
	ActionAdd            = "add"
	ActionToggle         = "toggle"
	ActionEdit           = "edit"
	ActionRemove         = "remove"
	ActionClearCompleted = "clear_completed"
	ActionImport         = "import"
)

// Event is one row of history.csv.
type Event struct {
	Timestamp time.Time
	Action    string
	DebtID    string // empty for ledger-wide actions
	Details   string
}

// Header is the CSV header for history.csv.
const Header = "timestamp,action,debt_id,details"

// FileName is the log file inside the history directory.
const FileName = "history.csv"

const (
	numFields    = 4
	colTimestamp = 0
	colAction    = 1
	colDebtID    = 2
	colDetails   = 3
)

// MarshalEvent converts an Event to a CSV row.
func MarshalEvent(e Event) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colAction] = e.Action
	row[colDebtID] = e.DebtID
	row[colDetails] = e.Details
	return row
}

// UnmarshalEvent converts a CSV row to an Event.
func UnmarshalEvent(record []string) (Event, error) {
	if len(record) != numFields {
		return Event{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Event{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	return Event{
		Timestamp: ts,
		Action:    record[colAction],
		DebtID:    record[colDebtID],
		Details:   record[colDetails],
	}, nil
}

// Append writes events to <dir>/history.csv, creating the file and header
// if needed.
func Append(dir string, events []Event) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range events {
		if err := cw.Write(MarshalEvent(e)); err != nil {
			return fmt.Errorf("writing event %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns every event in <dir>/history.csv, oldest first. A missing
// file yields no events.
func Read(dir string) ([]Event, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	return readEvents(f)
}

func readEvents(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	events := make([]Event, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := UnmarshalEvent(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// ForDebt keeps only the events that touch debtID. A prefix of the id
// matches too.
func ForDebt(events []Event, debtID string) []Event {
	var out []Event
	for _, e := range events {
		if e.DebtID != "" && strings.HasPrefix(e.DebtID, debtID) {
			out = append(out, e)
		}
	}
	return out
}

// Tail returns the last n events.
func Tail(events []Event, n int) []Event {
	if n <= 0 || n >= len(events) {
		return events
	}
	return events[len(events)-n:]
}

// Recorder receives mutation events.
type Recorder interface {
	Record(action, debtID, details string) error
}

// FileRecorder appends each event to a history directory as it happens.
type FileRecorder struct {
	Dir string
	Now func() time.Time
}

// NewFileRecorder records into dir using the wall clock.
func NewFileRecorder(dir string) *FileRecorder {
	return &FileRecorder{Dir: dir, Now: time.Now}
}

func (r *FileRecorder) Record(action, debtID, details string) error {
	return Append(r.Dir, []Event{{
		Timestamp: r.Now(),
		Action:    action,
		DebtID:    debtID,
		Details:   details,
	}})
}

// Nop discards events.
type Nop struct{}

func (Nop) Record(string, string, string) error { return nil }
