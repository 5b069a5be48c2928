package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected backend sqlite, got %s", cfg.Storage.Backend)
	}
	if cfg.Board.DragThreshold != 1 {
		t.Errorf("expected drag_threshold 1, got %d", cfg.Board.DragThreshold)
	}
	if cfg.Board.Project != "" {
		t.Errorf("expected no default project, got %s", cfg.Board.Project)
	}
	if !cfg.Mock.Seed {
		t.Error("expected mock seed enabled by default")
	}
	if !cfg.UI.Mouse {
		t.Error("expected mouse enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
backend = "Memory"
db_path = "/tmp/test.db"

[board]
project = "p-002"
drag_threshold = 3

[mock]
latency_ms = 250
seed = false

[ui]
theme = "latte"
mouse = false
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("expected backend memory, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Board.Project != "p-002" {
		t.Errorf("expected project p-002, got %s", cfg.Board.Project)
	}
	if cfg.Board.DragThreshold != 3 {
		t.Errorf("expected drag_threshold 3, got %d", cfg.Board.DragThreshold)
	}
	if cfg.Latency() != 250*time.Millisecond {
		t.Errorf("expected latency 250ms, got %s", cfg.Latency())
	}
	if cfg.Mock.Seed {
		t.Error("expected seed disabled from file")
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
	if cfg.UI.Mouse {
		t.Error("expected mouse disabled from file")
	}
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[storage\nbackend ="), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[board]
project = "p-001"
drag_threshold = 2

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TABLERO_PROJECT", "p-002")
	t.Setenv("TABLERO_BACKEND", "memory")
	t.Setenv("TABLERO_MOCK_LATENCY_MS", "40")
	t.Setenv("TABLERO_UI_MOUSE", "false")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Board.Project != "p-002" {
		t.Errorf("expected project p-002 from env, got %s", cfg.Board.Project)
	}
	// File value should be kept when no env override
	if cfg.Board.DragThreshold != 2 {
		t.Errorf("expected drag_threshold 2 from file, got %d", cfg.Board.DragThreshold)
	}
	// Env should override default
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("expected backend memory from env, got %s", cfg.Storage.Backend)
	}
	if cfg.Mock.LatencyMS != 40 {
		t.Errorf("expected latency_ms 40 from env, got %d", cfg.Mock.LatencyMS)
	}
	if cfg.UI.Mouse {
		t.Error("expected mouse disabled from env")
	}
}

func TestLoadFrom_BadEnvValue(t *testing.T) {
	t.Setenv("TABLERO_DRAG_THRESHOLD", "far")

	if _, err := LoadFrom("/nonexistent/path/config.toml"); err == nil {
		t.Error("expected error for non-numeric TABLERO_DRAG_THRESHOLD")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"memory without db path", func(c *Config) { c.Storage.Backend = BackendMemory; c.Storage.DBPath = "" }, false},
		{"sqlite without db path", func(c *Config) { c.Storage.DBPath = "" }, true},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, true},
		{"zero threshold", func(c *Config) { c.Board.DragThreshold = 0 }, true},
		{"negative latency", func(c *Config) { c.Mock.LatencyMS = -1 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Board.Project = "p-001"
	cfg.Board.DragThreshold = 4
	cfg.UI.Theme = "mocha"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Board.Project != "p-001" {
		t.Errorf("expected project p-001, got %s", loaded.Board.Project)
	}
	if loaded.Board.DragThreshold != 4 {
		t.Errorf("expected drag_threshold 4, got %d", loaded.Board.DragThreshold)
	}
	if loaded.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", loaded.UI.Theme)
	}
}
