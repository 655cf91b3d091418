package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/debt-discipline/debts/internal/config"
	"github.com/debt-discipline/debts/internal/history"
	"github.com/debt-discipline/debts/internal/kvstore"
	"github.com/debt-discipline/debts/internal/ledger"
	dlog "github.com/debt-discipline/debts/internal/log"
	"github.com/debt-discipline/debts/internal/money"
	"github.com/debt-discipline/debts/internal/projection"
	"github.com/debt-discipline/debts/internal/tracker"
)

// app is everything a subcommand needs, opened from the config file.
type app struct {
	cfg        *config.Config
	baseDir    string
	log        *dlog.Logger
	kv         kvstore.Store
	tracker    *tracker.Tracker
	money      *money.Formatter
	historyDir string
}

// openApp loads config (file, .env, environment), opens the configured
// store and loads the ledger. Callers must Close the result.
func openApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	baseDir := filepath.Dir(flags.configPath)
	config.LoadEnv(filepath.Join(baseDir, ".env"))

	cfg, err := config.LoadOrDefault(flags.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := dlog.ParseLevel(cfg.Log.Level)
	logger := dlog.New(dlog.Config{
		Level:     level,
		Format:    cfg.Log.Format,
		Component: dlog.ComponentCommands,
		Output:    cmd.ErrOrStderr(),
	})

	clock, err := clockFor(flags.asOf)
	if err != nil {
		return nil, err
	}

	formatter, err := money.New(cfg.Display.Currency, cfg.Display.Language)
	if err != nil {
		return nil, err
	}

	storagePath := resolve(baseDir, cfg.Storage.Path)
	kv, err := kvstore.Open(cfg.Storage.Backend, storagePath)
	if err != nil {
		logger.Error("opening storage failed", dlog.FieldBackend, cfg.Storage.Backend, dlog.FieldPath, storagePath, dlog.FieldError, err)
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}

	store := ledger.NewStore(kv, cfg.Storage.Key, ledger.WithLogger(logger))
	// A broken ledger is logged and replaced by an empty one, never fatal.
	_ = store.Load()

	a := &app{
		cfg:     cfg,
		baseDir: baseDir,
		log:     logger,
		kv:      kv,
		money:   formatter,
	}
	opts := []tracker.Option{tracker.WithClock(clock), tracker.WithLogger(logger)}
	if cfg.History.Enabled {
		a.historyDir = resolve(baseDir, cfg.History.Path)
		opts = append(opts, tracker.WithRecorder(history.NewFileRecorder(a.historyDir)))
	}
	a.tracker = tracker.New(store, opts...)
	return a, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

// withApp opens the app around fn.
func withApp(cmd *cobra.Command, flags *globalFlags, fn func(a *app) error) error {
	a, err := openApp(cmd, flags)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func clockFor(asOf string) (projection.Clock, error) {
	if asOf == "" {
		return time.Now, nil
	}
	t, err := time.ParseInLocation("2006-01-02", asOf, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --as-of %q: want YYYY-MM-DD", asOf)
	}
	return projection.Fixed(t), nil
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
