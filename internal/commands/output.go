package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/debt-discipline/debts/internal/id"
	"github.com/debt-discipline/debts/internal/money"
	"github.com/debt-discipline/debts/internal/tracker"
)

// Output formats for list.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

const emptyList = "No debts to show"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderRows draws the list view as a bordered table.
func renderRows(w io.Writer, rows []tracker.Row, f *money.Formatter) {
	if len(rows) == 0 {
		fmt.Fprintln(w, emptyList)
		return
	}

	body := make([][]string, len(rows))
	for i, r := range rows {
		done := ""
		if r.Debt.Completed {
			done = "yes"
		}
		body[i] = []string{
			id.Short(r.Debt.ID),
			r.Debt.Name,
			fmt.Sprintf("%d", r.Debt.DueDay),
			f.Format(r.Debt.MonthlyAmount),
			f.Format(r.Debt.RemainingBalance),
			money.Percent(r.Percent),
			money.Months(r.Projection.Months),
			money.PaidBy(r.Projection.PaidBy),
			done,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "DUE", "MONTHLY", "REMAINING", "PAID", "PAYOFF", "PAID BY", "DONE").
		Rows(body...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.String())
}
