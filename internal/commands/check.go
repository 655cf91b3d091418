package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debt-discipline/debts/internal/ledger"
)

func newCheckCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the stored ledger is consistent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				problems := ledger.Check(a.tracker.Store().Debts())
				out := cmd.OutOrStdout()
				if len(problems) == 0 {
					fmt.Fprintf(out, "OK: %d debt(s), no problems\n", a.tracker.Store().Len())
					return nil
				}
				for _, p := range problems {
					fmt.Fprintln(out, p.Error())
				}
				return fmt.Errorf("%d problem(s) found", len(problems))
			})
		},
	}
}
