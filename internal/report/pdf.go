package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/debt-discipline/debts/internal/money"
	"github.com/debt-discipline/debts/internal/summary"
	"github.com/debt-discipline/debts/internal/tracker"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
	rowHeight    = 7.0
)

// column widths for the debt table, summing to contentWidth.
var tableCols = []struct {
	title string
	width float64
	align string
}{
	{"Name", 50, "L"},
	{"Due", 12, "C"},
	{"Monthly", 26, "R"},
	{"Remaining", 28, "R"},
	{"Paid", 14, "R"},
	{"Payoff", 20, "C"},
	{"Paid by", 20, "C"},
	{"Done", 10, "C"},
}

// PDF holds the inputs of a one-page ledger report.
type PDF struct {
	Summary   summary.Summary
	Rows      []tracker.Row
	Formatter *money.Formatter
	Generated time.Time
}

// Write renders the report to w.
func (p PDF) Write(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle("Debt payoff report", true)
	pdf.SetCreator("debts", true)
	pdf.SetCreationDate(p.Generated)
	pdf.SetModificationDate(p.Generated)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	p.writeHeading(pdf, tr)
	p.writeSummary(pdf, tr)
	p.writeTable(pdf, tr)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	return pdf.Output(w)
}

func (p PDF) writeHeading(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 12, "Debt Payoff Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(contentWidth, 6, tr("Generated "+p.Generated.Format("2 Jan 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)
}

func (p PDF) writeSummary(pdf *fpdf.Fpdf, tr func(string) string) {
	s := p.Summary
	f := p.Formatter
	lines := [][2]string{
		{"Debts", fmt.Sprintf("%d (%d completed, %d open)", s.Total, s.CompletedCount, s.IncompleteCount)},
		{"Total remaining", f.Format(s.TotalRemaining)},
		{"Total original", f.Format(s.TotalOriginal)},
		{"Monthly payments", f.Format(s.TotalMonthly)},
		{"Progress", money.Percent(s.OverallPercent) + "  " + f.Progress(s.TotalPaid(), s.TotalRemaining)},
		{"Estimated payoff", money.Months(s.Payoff.Months) + "  " + money.PaidBy(s.Payoff.PaidBy)},
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(contentWidth, 8, "Summary", "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	for _, l := range lines {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 6, l[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(contentWidth-45, 6, tr(l[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (p PDF) writeTable(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(contentWidth, 8, "Debts", "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 230, 241)
	for _, c := range tableCols {
		pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	if len(p.Rows) == 0 {
		pdf.CellFormat(contentWidth, rowHeight, "No debts to show", "1", 1, "C", false, 0, "")
		return
	}
	for i, r := range p.Rows {
		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		done := ""
		if r.Debt.Completed {
			done = "yes"
		}
		cells := []string{
			r.Debt.Name,
			fmt.Sprintf("%d", r.Debt.DueDay),
			p.Formatter.Format(r.Debt.MonthlyAmount),
			p.Formatter.Format(r.Debt.RemainingBalance),
			money.Percent(r.Percent),
			money.Months(r.Projection.Months),
			money.PaidBy(r.Projection.PaidBy),
			done,
		}
		for j, c := range tableCols {
			pdf.CellFormat(c.width, rowHeight, tr(cells[j]), "1", 0, c.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
}
