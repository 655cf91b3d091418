package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debt-discipline/debts/internal/model"
	"github.com/debt-discipline/debts/internal/money"
	"github.com/debt-discipline/debts/internal/projection"
	"github.com/debt-discipline/debts/internal/summary"
	"github.com/debt-discipline/debts/internal/tracker"
)

var today = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRows() []tracker.Row {
	visa := model.Debt{
		ID: "a1", Name: "Visa, gold", DueDay: 15,
		MonthlyAmount: dec("100"), RemainingBalance: dec("300"), OriginalBalance: dec("1000"),
	}
	car := model.Debt{
		ID: "b2", Name: "Car", DueDay: 1,
		MonthlyAmount: dec("0"), RemainingBalance: dec("5000"), OriginalBalance: dec("5000"), Completed: true,
	}
	var rows []tracker.Row
	for _, d := range []model.Debt{visa, car} {
		rows = append(rows, tracker.Row{
			Debt:       d,
			Projection: projection.Project(d.RemainingBalance, d.MonthlyAmount, d.DueDay, today),
			Percent:    d.PercentPaid(),
		})
	}
	return rows
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"a1", "Visa, gold", "15", "100", "300", "1000", "false", "70.00", "3", "2024-03-15"}, records[1])
	assert.Equal(t, []string{"b2", "Car", "1", "0", "5000", "5000", "true", "0.00", "", ""}, records[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(Header, ",")+"\n", buf.String())
}

func TestPDF_Write(t *testing.T) {
	rows := testRows()
	debts := []model.Debt{rows[0].Debt, rows[1].Debt}

	var buf bytes.Buffer
	err := PDF{
		Summary:   summary.Summarize(debts, today),
		Rows:      rows,
		Formatter: money.MustNew("EUR", "de"),
		Generated: today,
	}.Write(&buf)
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "%%EOF")
}

func TestPDF_WriteEmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	err := PDF{
		Summary:   summary.Summarize(nil, today),
		Formatter: money.MustNew("USD", "en-US"),
		Generated: today,
	}.Write(&buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
