// Package report renders the ledger as CSV and PDF documents.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/debt-discipline/debts/internal/tracker"
)

// Header columns. The first seven use the ledger's wire names so a report
// can be fed back through the CSV importer.
var Header = []string{
	"id", "name", "dueDay", "monthlyAmount", "remainingBalance", "originalBalance", "completed",
	"percentPaid", "monthsToPayoff", "paidBy",
}

const (
	numFields    = 10
	colID        = 0
	colName      = 1
	colDueDay    = 2
	colMonthly   = 3
	colRemaining = 4
	colOriginal  = 5
	colCompleted = 6
	colPercent   = 7
	colMonths    = 8
	colPaidBy    = 9
)

// MarshalRow converts a list row to CSV fields. Unknown projections are
// left blank.
func MarshalRow(r tracker.Row) []string {
	row := make([]string, numFields)
	row[colID] = r.Debt.ID
	row[colName] = r.Debt.Name
	row[colDueDay] = strconv.Itoa(r.Debt.DueDay)
	row[colMonthly] = r.Debt.MonthlyAmount.String()
	row[colRemaining] = r.Debt.RemainingBalance.String()
	row[colOriginal] = r.Debt.OriginalBalance.String()
	row[colCompleted] = strconv.FormatBool(r.Debt.Completed)
	row[colPercent] = r.Percent.StringFixed(2)
	if r.Projection.Months != nil {
		row[colMonths] = strconv.Itoa(*r.Projection.Months)
	}
	if r.Projection.PaidBy != nil {
		row[colPaidBy] = r.Projection.PaidBy.Format("2006-01-02")
	}
	return row
}

// WriteCSV writes a header and one line per row.
func WriteCSV(w io.Writer, rows []tracker.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(MarshalRow(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
