package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	dlog "github.com/debt-discipline/debts/internal/log"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "debts.yaml"

// DefaultStorageKey is the version-tagged key the ledger is persisted under.
// Bump the suffix when the record shape changes incompatibly.
const DefaultStorageKey = "debt_discipline_debts_v3"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config represents the top-level debts.yaml configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
}

// StorageConfig selects the key-value byte store backing the ledger.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"` // directory for file, database file for sqlite
	Key     string `yaml:"key"`
}

// DisplayConfig controls money formatting.
type DisplayConfig struct {
	Currency string `yaml:"currency"` // ISO 4217
	Language string `yaml:"language"` // BCP 47
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HistoryConfig controls the activity log.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads a debts.yaml file from disk. Fields missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    "data",
			Key:     DefaultStorageKey,
		},
		Display: DisplayConfig{
			Currency: "USD",
			Language: "en-US",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "data",
		},
	}
}

// Environment variables that override file values.
const (
	EnvStorageBackend = "DEBTS_STORAGE_BACKEND"
	EnvStoragePath    = "DEBTS_STORAGE_PATH"
	EnvStorageKey     = "DEBTS_STORAGE_KEY"
	EnvCurrency       = "DEBTS_CURRENCY"
	EnvLanguage       = "DEBTS_LANGUAGE"
	EnvLogLevel       = "DEBTS_LOG_LEVEL"
	EnvLogFormat      = "DEBTS_LOG_FORMAT"
)

// LoadEnv loads .env files (if present) into the process environment.
// Variables already set are not overwritten.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overrides cfg fields from the environment.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		env   string
		field *string
	}{
		{EnvStorageBackend, &c.Storage.Backend},
		{EnvStoragePath, &c.Storage.Path},
		{EnvStorageKey, &c.Storage.Key},
		{EnvCurrency, &c.Display.Currency},
		{EnvLanguage, &c.Display.Language},
		{EnvLogLevel, &c.Log.Level},
		{EnvLogFormat, &c.Log.Format},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && strings.TrimSpace(v) != "" {
			*o.field = strings.TrimSpace(v)
		}
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
		if c.Storage.Path == "" {
			problems = append(problems, fmt.Sprintf("storage.path is required for the %s backend", c.Storage.Backend))
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid storage.backend %q: must be one of %s, %s, %s",
			c.Storage.Backend, BackendFile, BackendSQLite, BackendMemory))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		problems = append(problems, "storage.key must not be empty")
	}

	if _, err := currency.ParseISO(c.Display.Currency); err != nil {
		problems = append(problems, fmt.Sprintf("invalid display.currency %q", c.Display.Currency))
	}
	if _, err := language.Parse(c.Display.Language); err != nil {
		problems = append(problems, fmt.Sprintf("invalid display.language %q", c.Display.Language))
	}

	if _, err := dlog.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		problems = append(problems, fmt.Sprintf("invalid log.format %q: must be text or json", c.Log.Format))
	}

	if c.History.Enabled && c.History.Path == "" {
		problems = append(problems, "history.path is required when history is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
