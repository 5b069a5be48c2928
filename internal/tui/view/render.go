// Package view provides view composition helpers for the TUI.
package view

// OverlayRenderer draws content on top of base content, either centered or
// at a fixed cell position.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
	RenderAt(base string, width, height int, block string, x, y int) string
}

// ViewState contains pre-rendered content and overlay metadata.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	ModalContent     string
	ShowModal        bool
	Floating         string // card following the pointer during a drag
	FloatX, FloatY   int
	Overlay          OverlayRenderer
	EmptyPlaceholder string
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}

	out := state.BaseContent
	if state.Overlay == nil {
		return out
	}
	if state.Floating != "" {
		out = state.Overlay.RenderAt(out, state.Width, state.Height, state.Floating, state.FloatX, state.FloatY)
	}
	if state.ShowModal {
		out = state.Overlay.Render(out, state.Width, state.Height, state.ModalContent)
	}
	return out
}
