package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debt-discipline/debts/internal/id"
	"github.com/debt-discipline/debts/internal/ledger"
	"github.com/debt-discipline/debts/internal/model"
	"github.com/debt-discipline/debts/internal/money"
	"github.com/debt-discipline/debts/internal/report"
)

const barWidth = 20

func newListCommand(flags *globalFlags) *cobra.Command {
	var filter, sortKey, dir, format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List debts with their payoff projection",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := parseView(filter, sortKey, dir)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(a *app) error {
				rows := a.tracker.List(view)
				out := cmd.OutOrStdout()
				switch format {
				case formatTable:
					renderRows(out, rows, a.money)
					return nil
				case formatCSV:
					return report.WriteCSV(out, rows)
				case formatJSON:
					debts := make([]model.Debt, len(rows))
					for i, r := range rows {
						debts[i] = r.Debt
					}
					data, err := ledger.EncodePretty(debts)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(out, string(data))
					return err
				default:
					return fmt.Errorf("unknown format %q: must be table, json or csv", format)
				}
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(ledger.FilterAll), "all, completed or incomplete")
	cmd.Flags().StringVar(&sortKey, "sort", string(ledger.SortDueDay), "dueDay, remaining or monthly")
	cmd.Flags().StringVar(&dir, "dir", string(ledger.Asc), "asc or desc")
	cmd.Flags().StringVar(&format, "format", formatTable, "table, json or csv")

	return cmd
}

func parseView(filter, sortKey, dir string) (ledger.View, error) {
	f, err := ledger.ParseFilter(filter)
	if err != nil {
		return ledger.View{}, err
	}
	k, err := ledger.ParseSortKey(sortKey)
	if err != nil {
		return ledger.View{}, err
	}
	d, err := ledger.ParseSortDir(dir)
	if err != nil {
		return ledger.View{}, err
	}
	return ledger.View{Filter: f, Sort: k, Dir: d}, nil
}

func newSummaryCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals, overall progress and a rough payoff estimate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				s := a.tracker.Summary()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Debts:           %d (%d completed, %d open)\n", s.Total, s.CompletedCount, s.IncompleteCount)
				fmt.Fprintf(out, "Total remaining: %s\n", a.money.Format(s.TotalRemaining))
				fmt.Fprintf(out, "Monthly:         %s\n", a.money.Format(s.TotalMonthly))
				fmt.Fprintf(out, "Progress:        %s %s\n", money.Bar(s.OverallPercent, barWidth), money.Percent(s.OverallPercent))
				fmt.Fprintf(out, "                 %s\n", a.money.Progress(s.TotalPaid(), s.TotalRemaining))
				fmt.Fprintf(out, "Debt free in:    %s (%s)\n", money.Months(s.Payoff.Months), money.PaidBy(s.Payoff.PaidBy))
				return nil
			})
		},
	}
}

func newProjectCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "project <id>",
		Short: "Show the payoff projection for one debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				d, err := a.tracker.Resolve(args[0])
				if err != nil {
					return err
				}
				p := a.tracker.Projection(d)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", d.Name, id.Short(d.ID))
				fmt.Fprintf(out, "  remaining: %s at %s/month, due day %d\n",
					a.money.Format(d.RemainingBalance), a.money.Format(d.MonthlyAmount), d.DueDay)
				fmt.Fprintf(out, "  progress:  %s %s\n", money.Bar(d.PercentPaid(), barWidth), money.Percent(d.PercentPaid()))
				fmt.Fprintf(out, "  payoff:    %s\n", money.Months(p.Months))
				fmt.Fprintf(out, "  paid by:   %s\n", money.PaidBy(p.PaidBy))
				return nil
			})
		},
	}
}
