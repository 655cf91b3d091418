package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debt-discipline/debts/internal/id"
	"github.com/debt-discipline/debts/internal/ledger"
)

func newAddCommand(flags *globalFlags) *cobra.Command {
	var due, monthly, remaining string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				d, err := a.tracker.AddDebt(ledger.Fields{
					Name:             args[0],
					DueDay:           due,
					MonthlyAmount:    monthly,
					RemainingBalance: remaining,
				})
				if d.ID == "" {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s): %s due on day %d\n",
					d.Name, id.Short(d.ID), a.money.Format(d.RemainingBalance), d.DueDay)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&due, "due", "1", "day of month the payment is due (1-31)")
	cmd.Flags().StringVar(&monthly, "monthly", "0", "monthly payment")
	cmd.Flags().StringVar(&remaining, "remaining", "0", "remaining balance")

	return cmd
}

func newToggleCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a debt completed, or not completed again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				d, err := a.tracker.Resolve(args[0])
				if err != nil {
					return err
				}
				d, err = a.tracker.Toggle(d.ID)
				state := "not completed"
				if d.Completed {
					state = "completed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", d.Name, state)
				return err
			})
		},
	}
}

func newEditCommand(flags *globalFlags) *cobra.Command {
	var name, due, monthly, remaining string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a debt's name, due day, monthly payment or balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				d, err := a.tracker.Resolve(args[0])
				if err != nil {
					return err
				}
				draft, err := a.tracker.StartEdit(d.ID)
				if err != nil {
					return err
				}

				changed := cmd.Flags().Changed
				if changed("name") {
					draft.Name = name
				}
				if changed("due") {
					draft.DueDay = due
				}
				if changed("monthly") {
					draft.MonthlyAmount = monthly
				}
				if changed("remaining") {
					draft.RemainingBalance = remaining
				}

				d, err = a.tracker.SaveEdit(draft.ID, draft.Fields())
				if d.ID == "" {
					a.tracker.CancelEdit()
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", d.Name,
					a.money.Progress(d.OriginalBalance.Sub(d.RemainingBalance), d.RemainingBalance))
				return err
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&due, "due", "", "new due day")
	cmd.Flags().StringVar(&monthly, "monthly", "", "new monthly payment")
	cmd.Flags().StringVar(&remaining, "remaining", "", "new remaining balance")

	return cmd
}

func newRemoveCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a debt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				d, err := a.tracker.Resolve(args[0])
				if err != nil {
					return err
				}
				if err := a.tracker.Remove(d.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", d.Name)
				return nil
			})
		},
	}
}

func newClearCompletedCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Remove every completed debt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				n, err := a.tracker.ClearCompleted()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed debt(s)\n", n)
				return nil
			})
		},
	}
}
