package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// StoreConfig selects the habit repository implementation.
type StoreConfig struct {
	Backend string `yaml:"backend"` // "memory" or "sqlite"
}

// HabitsConfig holds validation options for habits.
type HabitsConfig struct {
	AllowNonPositiveFrequency bool `yaml:"allow_non_positive_frequency"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"` // empty: off in the TUI, stderr in the shell
}

// UIConfig controls terminal output.
type UIConfig struct {
	Color bool `yaml:"color"`
}

// Config represents the habits configuration
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Habits HabitsConfig `yaml:"habits"`
	Log    LogConfig    `yaml:"log"`
	UI     UIConfig     `yaml:"ui"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Store: StoreConfig{Backend: BackendMemory},
		Log:   LogConfig{Level: "info"},
		UI:    UIConfig{Color: true},
	}
}

// DefaultPath returns ~/.habits/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".habits", "config.yaml"), nil
}

// LoadConfig reads the YAML config at path and applies environment overrides.
// A missing file yields the defaults; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as YAML, creating the parent directory.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("invalid store backend %q (want %s or %s)", c.Store.Backend, BackendMemory, BackendSQLite)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if backend := os.Getenv("HABITS_STORE_BACKEND"); backend != "" {
		c.Store.Backend = backend
	}
	if level := os.Getenv("HABITS_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if file := os.Getenv("HABITS_LOG_FILE"); file != "" {
		c.Log.File = file
	}
	if allow := os.Getenv("HABITS_ALLOW_NON_POSITIVE_FREQUENCY"); allow != "" {
		b, err := strconv.ParseBool(allow)
		if err != nil {
			return fmt.Errorf("invalid HABITS_ALLOW_NON_POSITIVE_FREQUENCY %q (want true or false)", allow)
		}
		c.Habits.AllowNonPositiveFrequency = b
	}
	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.Color = false
	}
	return nil
}
