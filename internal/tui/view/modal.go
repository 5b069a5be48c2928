package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles holds the styles of a modal box.
type ModalStyles struct {
	Frame        lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Hint         lipgloss.Style
	Key          lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
}

// ModalAction is a key and what pressing it does.
type ModalAction struct {
	Key   string
	Label string
}

// ModalViewState is a modal ready to draw. Actions become buttons when
// Buttons is set and a hint line otherwise.
type ModalViewState struct {
	Title   string
	Body    string
	Actions []ModalAction
	Buttons bool
	Styles  ModalStyles
}

// RenderModal draws a modal: title, body, then its actions.
func RenderModal(state ModalViewState) string {
	s := state.Styles
	parts := []string{s.Title.Render(state.Title)}
	if state.Body != "" {
		parts = append(parts, state.Body)
	}
	if len(state.Actions) > 0 {
		if state.Buttons {
			parts = append(parts, ModalButtons(s, state.Actions...))
		} else {
			parts = append(parts, ModalHints(s, state.Actions...))
		}
	}
	return s.Frame.Render(strings.Join(parts, "\n\n"))
}

// ModalButtons renders actions as buttons. The first is the default.
func ModalButtons(s ModalStyles, actions ...ModalAction) string {
	parts := make([]string, 0, len(actions))
	for i, a := range actions {
		style := s.Button
		if i == 0 {
			style = s.ButtonActive
		}
		key := s.Key.Background(style.GetBackground()).PaddingLeft(1)
		parts = append(parts, key.Render(a.Key)+style.Render(a.Label))
	}
	return strings.Join(parts, s.Body.Render(" "))
}

// ModalHints renders actions as a "key label" line.
func ModalHints(s ModalStyles, actions ...ModalAction) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, s.Key.Render(a.Key)+s.Hint.Render(" "+a.Label))
	}
	return strings.Join(parts, s.Hint.Render("  "))
}
