// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Board   BoardConfig   `toml:"board"`
	Mock    MockConfig    `toml:"mock"`
	UI      UIConfig      `toml:"ui"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Backend string `toml:"backend"` // "sqlite" or "memory"
	DBPath  string `toml:"db_path"`
}

// BoardConfig holds board behaviour settings.
type BoardConfig struct {
	Project       string `toml:"project"`        // project id opened by default, empty means the first one
	DragThreshold int    `toml:"drag_threshold"` // cells the pointer must travel before a drag starts
}

// MockConfig configures the in-memory backend.
type MockConfig struct {
	LatencyMS int  `toml:"latency_ms"` // simulated delay per call
	Seed      bool `toml:"seed"`       // start with sample projects
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
	Mouse bool   `toml:"mouse"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			DBPath:  defaultDBPath(),
		},
		Board: BoardConfig{
			DragThreshold: 1,
		},
		Mock: MockConfig{
			LatencyMS: 0,
			Seed:      true,
		},
		UI: UIConfig{
			Theme: "frappe",
			Mouse: true,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tablero.db"
	}
	return filepath.Join(home, ".local", "share", "tablero", "tablero.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "tablero", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TABLERO_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("TABLERO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TABLERO_PROJECT"); v != "" {
		cfg.Board.Project = v
	}
	if v := os.Getenv("TABLERO_DRAG_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TABLERO_DRAG_THRESHOLD: %w", err)
		}
		cfg.Board.DragThreshold = n
	}
	if v := os.Getenv("TABLERO_MOCK_LATENCY_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TABLERO_MOCK_LATENCY_MS: %w", err)
		}
		cfg.Mock.LatencyMS = n
	}
	if v := os.Getenv("TABLERO_MOCK_SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TABLERO_MOCK_SEED: %w", err)
		}
		cfg.Mock.Seed = b
	}
	if v := os.Getenv("TABLERO_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("TABLERO_UI_MOUSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TABLERO_UI_MOUSE: %w", err)
		}
		cfg.UI.Mouse = b
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set for the sqlite backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid backend %q, want %s or %s", c.Storage.Backend, BackendSQLite, BackendMemory)
	}
	if c.Board.DragThreshold < 1 {
		return fmt.Errorf("drag_threshold must be at least 1, got %d", c.Board.DragThreshold)
	}
	if c.Mock.LatencyMS < 0 {
		return fmt.Errorf("latency_ms must not be negative, got %d", c.Mock.LatencyMS)
	}
	return nil
}

// Latency returns the simulated latency of the memory backend.
func (c *Config) Latency() time.Duration {
	return time.Duration(c.Mock.LatencyMS) * time.Millisecond
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
