package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterLines is the height of the footer.
const FooterLines = 2

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	Width       int
	StatusText  string
	HelpText    string
	PromptLine  string // replaces the status line while prompting
	ShowPrompt  bool
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
}

// RenderFooter renders the status (or prompt) line and the help line.
func RenderFooter(model FooterModel) string {
	top := footerLine(model.Width, model.StatusStyle, model.StatusText)
	if model.ShowPrompt {
		top = FitLine(model.PromptLine, model.Width)
	}
	return top + "\n" + footerLine(model.Width, model.HelpStyle, model.HelpText)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return FitLine(style.Render(content), width)
}
