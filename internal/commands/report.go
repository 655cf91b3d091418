package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/debt-discipline/debts/internal/ledger"
	"github.com/debt-discipline/debts/internal/report"
)

const formatPDF = "pdf"

func newReportCommand(flags *globalFlags) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a CSV or PDF report of every debt and its projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatCSV && format != formatPDF {
				return fmt.Errorf("unknown report format %q: must be csv or pdf", format)
			}
			if format == formatPDF && output == "" {
				return fmt.Errorf("a pdf report needs --output")
			}

			return withApp(cmd, flags, func(a *app) error {
				rows := a.tracker.List(ledger.DefaultView())

				var w io.Writer = cmd.OutOrStdout()
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("creating report: %w", err)
					}
					defer f.Close()
					w = f
				}

				var err error
				if format == formatPDF {
					err = report.PDF{
						Summary:   a.tracker.Summary(),
						Rows:      rows,
						Formatter: a.money,
						Generated: a.tracker.Now(),
					}.Write(w)
				} else {
					err = report.WriteCSV(w, rows)
				}
				if err != nil {
					return err
				}
				if output != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s report to %s\n", format, output)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", formatCSV, "csv or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (csv defaults to stdout)")

	return cmd
}
