// Package theme provides color themes for the board TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Cards, subtle highlight
	BgSelection string `toml:"bg_selection"` // Cursor, drop target
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Metadata, placeholders
	Accent      string `toml:"accent"`       // Title, selected card border
	Warning     string `toml:"warning"`      // Move mode, pending commits
	Danger      string `toml:"danger"`       // Errors, overdue dates

	// Column accents
	Backlog    string `toml:"backlog"`
	Todo       string `toml:"todo"`
	InProgress string `toml:"in_progress"`
	Done       string `toml:"done"`

	// Priority markers
	High   string `toml:"high"`
	Medium string `toml:"medium"`
	Low    string `toml:"low"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.Warning = coalesce(t.Warning, t.Accent)
	t.Danger = coalesce(t.Danger, t.Warning)
	t.Backlog = coalesce(t.Backlog, t.FgMuted)
	t.Todo = coalesce(t.Todo, t.Accent)
	t.InProgress = coalesce(t.InProgress, t.Warning)
	t.Done = coalesce(t.Done, t.Accent)
	t.High = coalesce(t.High, t.Danger)
	t.Medium = coalesce(t.Medium, t.Warning)
	t.Low = coalesce(t.Low, t.FgMuted)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}

// IsLight reports whether the theme has a light background.
func (t *Theme) IsLight() bool {
	return isLightTheme(t.Bg)
}
