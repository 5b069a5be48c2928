// Package tui provides the terminal user interface for tablero.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/tablero/internal/task"
	"github.com/javiermolinar/tablero/internal/tui/theme"
	"github.com/javiermolinar/tablero/internal/tui/view"
)

// ghostBorder marks the slot the dragged card will land in.
var ghostBorder = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "╭",
	TopRight:    "╮",
	BottomLeft:  "╰",
	BottomRight: "╯",
}

// CardStyles are the styles of one card state within a column.
type CardStyles struct {
	Card  lipgloss.Style
	Title lipgloss.Style
	Meta  lipgloss.Style
}

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle       lipgloss.Style
	HeaderStyle      lipgloss.Style
	HeaderMutedStyle lipgloss.Style
	ModeStyle        lipgloss.Style
	MoveModeStyle    lipgloss.Style

	ColumnTitleStyles map[task.Status]lipgloss.Style
	ColumnDropStyle   lipgloss.Style
	ColumnCountStyle  lipgloss.Style
	RuleStyle         lipgloss.Style
	EmptyStyle        lipgloss.Style

	Cards         map[task.Status]CardStyles // resting cards
	SelectedCards map[task.Status]CardStyles // card under the cursor
	LiftedCard    CardStyles                 // card moved with the keyboard
	GhostCard     CardStyles                 // drop slot during a pointer drag
	FloatingCard  CardStyles                 // card following the pointer
	SavingCard    CardStyles                 // dropped card waiting for its commit
	OverdueStyle  lipgloss.Style

	PriorityStyles map[task.Priority]lipgloss.Style

	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	HelpStyle        lipgloss.Style
	PromptStyle      lipgloss.Style

	ModalBgColor lipgloss.Color
	Modal        view.ModalStyles
	ModalMeta    lipgloss.Style
	ModalLabel   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Padding(0, 1)
	s.HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Fg).
		Padding(0, 1)
	s.HeaderMutedStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)
	s.ModeStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Padding(0, 1)
	s.MoveModeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnWarning).
		Background(p.Warning).
		Padding(0, 1)

	s.ColumnDropStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.DropBg)
	s.ColumnCountStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)
	s.RuleStyle = lipgloss.NewStyle().
		Foreground(p.BgSelection)
	s.EmptyStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Italic(true)

	s.ColumnTitleStyles = make(map[task.Status]lipgloss.Style)
	s.Cards = make(map[task.Status]CardStyles)
	s.SelectedCards = make(map[task.Status]CardStyles)
	for _, status := range task.Statuses() {
		c := p.Column(status)
		s.ColumnTitleStyles[status] = lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Accent)
		s.Cards[status] = CardStyles{
			Card: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(c.CardBgActive).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Foreground(p.Fg),
			Meta:  lipgloss.NewStyle().Foreground(p.FgMuted),
		}
		s.SelectedCards[status] = CardStyles{
			Card: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(c.Accent).
				Background(c.CardBg).
				BorderBackground(p.Bg).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Foreground(p.Fg).Bold(true),
			Meta:  lipgloss.NewStyle().Foreground(p.FgMuted),
		}
	}

	s.LiftedCard = CardStyles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Warning).
			Padding(0, 1),
		Title: lipgloss.NewStyle().Foreground(p.Fg).Bold(true),
		Meta:  lipgloss.NewStyle().Foreground(p.Warning),
	}
	s.GhostCard = CardStyles{
		Card: lipgloss.NewStyle().
			Border(ghostBorder).
			BorderForeground(p.FgMuted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().Foreground(p.FgMuted),
		Meta:  lipgloss.NewStyle().Foreground(p.FgMuted),
	}
	s.FloatingCard = CardStyles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Accent).
			Background(p.BgHighlight).
			Padding(0, 1),
		Title: lipgloss.NewStyle().Foreground(p.Fg).Bold(true),
		Meta:  lipgloss.NewStyle().Foreground(p.FgMuted),
	}
	s.SavingCard = CardStyles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Warning).
			Padding(0, 1),
		Title: lipgloss.NewStyle().Foreground(p.FgMuted),
		Meta:  lipgloss.NewStyle().Foreground(p.Warning).Italic(true),
	}
	s.OverdueStyle = lipgloss.NewStyle().Foreground(p.Danger)

	s.PriorityStyles = make(map[task.Priority]lipgloss.Style, len(p.Priorities))
	for prio, color := range p.Priorities {
		s.PriorityStyles[prio] = lipgloss.NewStyle().Foreground(color).Bold(prio == task.PriorityHigh)
	}

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Padding(0, 1)
	s.StatusErrorStyle = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true).
		Padding(0, 1)
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Padding(0, 1)
	s.PromptStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		PaddingLeft(1)

	modalBg := p.BgHighlight
	s.ModalBgColor = modalBg
	s.Modal = view.ModalStyles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Background(modalBg).
			Foreground(p.Fg).
			Padding(1, 2).
			Align(lipgloss.Left),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Fg).
			Background(modalBg),
		Body: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(modalBg),
		Hint: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(modalBg),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Background(modalBg),
		Button: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BgSelection).
			Padding(0, 1),
		ButtonActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnDanger).
			Background(p.Danger).
			Padding(0, 1),
	}
	s.ModalMeta = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(modalBg)
	s.ModalLabel = lipgloss.NewStyle().
		Bold(true).
		Width(10).
		Foreground(p.Fg).
		Background(modalBg)

	return s
}

// Palette returns the colors the styles were built from.
func (s *Styles) Palette() *theme.Palette {
	return s.palette
}

// cardStyles returns the styles of the card state for status.
func (s *Styles) cardStyles(status task.Status, selected bool) CardStyles {
	if selected {
		return s.SelectedCards[status]
	}
	return s.Cards[status]
}
