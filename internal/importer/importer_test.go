package importer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debt-discipline/debts/internal/kvstore"
	"github.com/debt-discipline/debts/internal/ledger"
	"github.com/debt-discipline/debts/internal/model"
	"github.com/debt-discipline/debts/internal/projection"
	"github.com/debt-discipline/debts/internal/report"
	"github.com/debt-discipline/debts/internal/tracker"
)

func normalize(t *testing.T, raw any) []model.Debt {
	t.Helper()
	n := 0
	norm := &ledger.Normalizer{NewID: func() string { n++; return fmt.Sprintf("gen-%d", n) }}
	debts, err := norm.NormalizeBatch(raw)
	require.NoError(t, err)
	return debts
}

func TestJSONParser(t *testing.T) {
	raw, err := (&JSONParser{}).Parse(strings.NewReader(`[{"id":"a","name":"Visa","remainingBalance":300.5}]`))
	require.NoError(t, err)

	debts := normalize(t, raw)
	require.Len(t, debts, 1)
	assert.Equal(t, "Visa", debts[0].Name)
	assert.Equal(t, "300.5", debts[0].RemainingBalance.String())
}

func TestJSONParser_Invalid(t *testing.T) {
	_, err := (&JSONParser{}).Parse(strings.NewReader(`{oops`))
	assert.ErrorIs(t, err, ledger.ErrInvalidJSON)
}

func TestCSVParser(t *testing.T) {
	input := "name,dueDay,amount,balance,notes\n" +
		"Visa,15,100,300,ignored\n" +
		"\"Car, blue\",,250.50,5000,\n"

	raw, err := (&CSVParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)

	debts := normalize(t, raw)
	require.Len(t, debts, 2)

	assert.Equal(t, "Visa", debts[0].Name)
	assert.Equal(t, 15, debts[0].DueDay)
	assert.Equal(t, "100", debts[0].MonthlyAmount.String())
	assert.Equal(t, "300", debts[0].RemainingBalance.String())
	assert.Equal(t, "gen-1", debts[0].ID)

	assert.Equal(t, "Car, blue", debts[1].Name)
	assert.Equal(t, 1, debts[1].DueDay, "blank cell falls back to the default")
	assert.Equal(t, "250.5", debts[1].MonthlyAmount.String())
}

func TestCSVParser_CompletedColumn(t *testing.T) {
	input := "name,completed\na,false\nb,TRUE\nc,yes\nd,\n"
	raw, err := (&CSVParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)

	debts := normalize(t, raw)
	require.Len(t, debts, 4)
	assert.False(t, debts[0].Completed)
	assert.True(t, debts[1].Completed)
	assert.True(t, debts[2].Completed, "other non-empty text is truthy")
	assert.False(t, debts[3].Completed)
}

func TestCSVParser_Empty(t *testing.T) {
	raw, err := (&CSVParser{}).Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, normalize(t, raw))
}

func TestCSVParser_Ragged(t *testing.T) {
	_, err := (&CSVParser{}).Parse(strings.NewReader("name,dueDay\nVisa\n"))
	var pe *ledger.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestCSVParser_ReadsReportOutput(t *testing.T) {
	kv := kvstore.NewMemory()
	store := ledger.NewStore(kv, "k")
	tr := tracker.New(store, tracker.WithClock(projection.Fixed(testToday)))
	_, err := tr.AddDebt(ledger.Fields{Name: "Visa", DueDay: 15, MonthlyAmount: "100", RemainingBalance: "300"})
	require.NoError(t, err)
	d, err := tr.AddDebt(ledger.Fields{Name: "Car", DueDay: 3, MonthlyAmount: "250", RemainingBalance: "5000"})
	require.NoError(t, err)
	_, err = tr.Toggle(d.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, tr.List(ledger.View{Filter: ledger.FilterAll, Sort: ledger.SortDueDay, Dir: ledger.Asc})))

	raw, err := (&CSVParser{}).Parse(&buf)
	require.NoError(t, err)
	got := normalize(t, raw)

	want := store.Debts()
	require.Len(t, got, 2)
	byID := map[string]model.Debt{}
	for _, g := range got {
		byID[g.ID] = g
	}
	for _, w := range want {
		assert.True(t, w.Equal(byID[w.ID]), "debt %s survives CSV round trip", w.Name)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("xml"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("JSON"))
	assert.NotNil(t, r.Get("Csv"))
	assert.Equal(t, []string{"csv", "json"}, r.Formats())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&JSONParser{})
	assert.Panics(t, func() { r.Register(&JSONParser{}) })
}

func TestRegistry_Detect(t *testing.T) {
	r := DefaultRegistry()

	p, err := r.Detect("", "debts.json")
	require.NoError(t, err)
	assert.Equal(t, "json", p.Format())

	p, err = r.Detect("", "Export.CSV")
	require.NoError(t, err)
	assert.Equal(t, "csv", p.Format())

	p, err = r.Detect("csv", "debts.txt")
	require.NoError(t, err)
	assert.Equal(t, "csv", p.Format())

	_, err = r.Detect("", "debts")
	assert.ErrorContains(t, err, "cannot tell the format")

	_, err = r.Detect("", "debts.xml")
	assert.ErrorContains(t, err, "unknown import format")
}

var testToday = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
