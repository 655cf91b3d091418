package commands

import (
	"github.com/spf13/cobra"

	"github.com/debt-discipline/debts/internal/buildinfo"
	"github.com/debt-discipline/debts/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	asOf       string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "debts",
		Short:   "Track debts and project when they are paid off",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultFile, "config file")
	rootCmd.PersistentFlags().StringVar(&flags.asOf, "as-of", "", "treat this date (YYYY-MM-DD) as today")

	rootCmd.AddCommand(
		newInitCommand(flags),
		newAddCommand(flags),
		newListCommand(flags),
		newToggleCommand(flags),
		newEditCommand(flags),
		newRemoveCommand(flags),
		newClearCompletedCommand(flags),
		newExportCommand(flags),
		newImportCommand(flags),
		newSummaryCommand(flags),
		newProjectCommand(flags),
		newReportCommand(flags),
		newHistoryCommand(flags),
		newCheckCommand(flags),
	)

	return rootCmd
}
