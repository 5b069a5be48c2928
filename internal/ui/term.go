package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/tablero/internal/task"
)

// Color definitions for consistent styling across the UI.
var (
	colorHeader = color.New(color.Bold)
	colorMuted  = color.New(color.FgWhite, color.Faint)
	colorWarn   = color.New(color.FgYellow)
	colorOK     = color.New(color.FgGreen)
	colorDanger = color.New(color.FgRed, color.Bold)

	statusColors = map[task.Status]*color.Color{
		task.StatusBacklog:    color.New(color.FgWhite, color.Faint),
		task.StatusTodo:       color.New(color.FgBlue, color.Bold),
		task.StatusInProgress: color.New(color.FgYellow, color.Bold),
		task.StatusDone:       color.New(color.FgGreen, color.Bold),
	}

	priorityColors = map[task.Priority]*color.Color{
		task.PriorityLow:    color.New(color.FgWhite, color.Faint),
		task.PriorityMedium: color.New(color.FgCyan),
		task.PriorityHigh:   color.New(color.FgRed, color.Bold),
	}
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

func formatDanger(s string) string {
	return colorDanger.Sprint(s)
}

func formatStatus(s task.Status, text string) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(text)
	}
	return text
}

func formatPriority(p task.Priority, text string) string {
	if c, ok := priorityColors[p]; ok {
		return c.Sprint(text)
	}
	return text
}
