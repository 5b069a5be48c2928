// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/tablero/internal/dateutil"
	"github.com/javiermolinar/tablero/internal/task"
)

// PriorityMark returns the marker shown before a card title.
func PriorityMark(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "▲ "
	case task.PriorityLow:
		return "▽ "
	default:
		return "• "
	}
}

// CardMeta builds the second card line: assignee initials, due date and tags.
func CardMeta(t *task.Task, now time.Time) string {
	var parts []string
	if t.Assignee != nil {
		parts = append(parts, t.Assignee.Initials)
	}
	if t.Due != nil {
		parts = append(parts, "due "+dateutil.FormatDue(*t.Due, now))
	}
	for _, tag := range t.Tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " ")
}

// Truncate shortens s to width cells, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
