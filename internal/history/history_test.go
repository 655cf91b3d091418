package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func testEvent() Event {
	return Event{
		Timestamp: testTime,
		Action:    ActionEdit,
		DebtID:    "3f1c9a2e-7b4d-4c1e-9a55-0d3c2b1a0f9e",
		Details:   "remaining 300 -> 450, original raised to 450",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, Append(dir, []Event{testEvent()}))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, Header, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-10T09:30:00Z,edit,3f1c9a2e"))
}

func TestAppend_ExistingFileKeepsOneHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Event{testEvent()}))

	e2 := testEvent()
	e2.Action = ActionImport
	e2.DebtID = ""
	e2.Details = "3 debts"
	require.NoError(t, Append(dir, []Event{e2}))

	events, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionEdit, events[0].Action)
	assert.Equal(t, ActionImport, events[1].Action)
	assert.Empty(t, events[1].DebtID)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEvent()
	original.Details = `quoted "name", with comma`
	require.NoError(t, Append(dir, []Event{original}))

	events, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, original, events[0])
}

func TestRead_MissingFile(t *testing.T) {
	events, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRead_BadTimestamp(t *testing.T) {
	dir := t.TempDir()
	content := Header + "\nyesterday,add,x,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestUnmarshalEvent_WrongFieldCount(t *testing.T) {
	_, err := UnmarshalEvent([]string{"a", "b"})
	assert.ErrorContains(t, err, "expected 4 fields")
}

func TestForDebtAndTail(t *testing.T) {
	events := []Event{
		{Action: ActionAdd, DebtID: "aaa-1"},
		{Action: ActionAdd, DebtID: "bbb-2"},
		{Action: ActionToggle, DebtID: "aaa-1"},
		{Action: ActionImport},
	}

	got := ForDebt(events, "aaa")
	require.Len(t, got, 2)
	assert.Equal(t, ActionToggle, got[1].Action)

	assert.Len(t, Tail(events, 2), 2)
	assert.Equal(t, ActionImport, Tail(events, 1)[0].Action)
	assert.Len(t, Tail(events, 0), 4)
	assert.Len(t, Tail(events, 10), 4)
}

func TestFileRecorder(t *testing.T) {
	dir := t.TempDir()
	r := &FileRecorder{Dir: dir, Now: func() time.Time { return testTime }}

	require.NoError(t, r.Record(ActionAdd, "id-1", "Visa"))
	require.NoError(t, r.Record(ActionRemove, "id-1", ""))

	events, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, Event{Timestamp: testTime, Action: ActionAdd, DebtID: "id-1", Details: "Visa"}, events[0])
	assert.Equal(t, ActionRemove, events[1].Action)
}
