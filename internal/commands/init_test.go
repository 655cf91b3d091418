package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debt-discipline/debts/internal/commands"
	"github.com/debt-discipline/debts/internal/config"
)

// runDebts executes the CLI in-process against the config at cfgPath with
// today fixed to 2024-01-10.
func runDebts(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--config", cfgPath, "--as-of", "2024-01-10"))
	err := cmd.Execute()
	return out.String(), err
}

// initLedger runs init in a fresh directory and returns the config path.
func initLedger(t *testing.T, extra ...string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), config.DefaultFile)
	_, err := runDebts(t, cfgPath, append([]string{"init"}, extra...)...)
	require.NoError(t, err)
	return cfgPath
}

// storedDebts reads the ledger back through list --format json.
func storedDebts(t *testing.T, cfgPath string) []map[string]any {
	t.Helper()
	out, err := runDebts(t, cfgPath, "list", "--format", "json")
	require.NoError(t, err)
	var debts []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &debts))
	return debts
}

func TestInit_WritesConfigAndDataDir(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.DefaultFile)

	out, err := runDebts(t, cfgPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized")

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, config.DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, "USD", cfg.Display.Currency)

	info, err := os.Stat(filepath.Join(dir, "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	cfgPath := initLedger(t)

	_, err := runDebts(t, cfgPath, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runDebts(t, cfgPath, "init", "--force", "--currency", "EUR")
	require.NoError(t, err)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Display.Currency)
}

func TestInit_SQLiteBackend(t *testing.T) {
	cfgPath := initLedger(t, "--backend", "sqlite")

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join("data", "debts.db"), cfg.Storage.Path)
}

func TestInit_RejectsInvalidSettings(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.DefaultFile)

	_, err := runDebts(t, cfgPath, "init", "--backend", "redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")

	_, err = runDebts(t, cfgPath, "init", "--currency", "XYZW")
	require.Error(t, err)

	_, statErr := os.Stat(cfgPath)
	assert.True(t, os.IsNotExist(statErr), "no config written for invalid settings")
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "debts version")
}
