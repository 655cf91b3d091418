package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/debt-discipline/debts/internal/importer"
	"github.com/debt-discipline/debts/internal/ledger"
)

func newExportCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the ledger as JSON to a file, or to stdout",
		Long:  "Write the ledger as JSON. Passing \"-\" or no file writes to stdout; a directory gets " + ledger.ExportFilename + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				data, err := a.tracker.ExportJSON()
				if err != nil {
					return err
				}
				if len(args) == 0 || args[0] == "-" {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return err
				}

				path := args[0]
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					path = filepath.Join(path, ledger.ExportFilename)
				}
				if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("writing export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d debt(s) to %s\n", a.tracker.Store().Len(), path)
				return nil
			})
		},
	}
}

func newImportCommand(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the ledger with the contents of a JSON or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			parser, err := importer.DefaultRegistry().Detect(format, path)
			if err != nil {
				return err
			}

			return withApp(cmd, flags, func(a *app) error {
				var n int
				if parser.Format() == "json" {
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("reading %s: %w", path, err)
					}
					n, err = a.tracker.ImportJSON(data)
					if err != nil {
						return importFailed(err)
					}
				} else {
					f, err := os.Open(path)
					if err != nil {
						return fmt.Errorf("reading %s: %w", path, err)
					}
					raw, err := parser.Parse(f)
					f.Close()
					if err != nil {
						return err
					}
					n, err = a.tracker.ReplaceAll(raw, parser.Format())
					if err != nil {
						return importFailed(err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d debt(s)\n", n)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or csv (default: from the file extension)")

	return cmd
}

// importFailed keeps the user-facing message of a rejected file stable.
func importFailed(err error) error {
	var pe *ledger.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("import failed, ledger unchanged: %w", err)
	}
	return err
}
