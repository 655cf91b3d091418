package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/debt-discipline/debts/internal/history"
	"github.com/debt-discipline/debts/internal/id"
)

func newHistoryCommand(flags *globalFlags) *cobra.Command {
	var debtID string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				if a.historyDir == "" {
					return fmt.Errorf("history is disabled in %s", flags.configPath)
				}
				events, err := history.Read(a.historyDir)
				if err != nil {
					return err
				}
				if debtID != "" {
					events = history.ForDebt(events, debtID)
				}
				events = history.Tail(events, limit)

				out := cmd.OutOrStdout()
				if len(events) == 0 {
					fmt.Fprintln(out, "No activity recorded")
					return nil
				}
				for _, e := range events {
					fmt.Fprintf(out, "%s  %-15s %-8s %s\n",
						e.Timestamp.Local().Format(time.DateTime), e.Action, id.Short(e.DebtID), e.Details)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&debtID, "debt", "", "only events for this debt id or prefix")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many recent events (0 for all)")

	return cmd
}
