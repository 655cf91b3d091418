package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/debt-discipline/debts/internal/config"
)

func newInitCommand(flags *globalFlags) *cobra.Command {
	var force bool
	var backend string
	var currencyCode string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and create the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags.configPath, backend, currencyCode, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.Flags().StringVar(&backend, "backend", config.BackendFile, "storage backend: file, sqlite or memory")
	cmd.Flags().StringVar(&currencyCode, "currency", "USD", "ISO 4217 currency for display")

	return cmd
}

func runInit(cmd *cobra.Command, configPath, backend, currencyCode string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Display.Currency = currencyCode
	if backend == config.BackendSQLite {
		cfg.Storage.Path = filepath.Join("data", "debts.db")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	baseDir := filepath.Dir(configPath)
	if err := os.MkdirAll(filepath.Join(baseDir, "data"), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized debts ledger config at %s (%s storage)\n", configPath, backend)
	return nil
}
