package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/tablero/internal/board"
	"github.com/javiermolinar/tablero/internal/debuglog"
	"github.com/javiermolinar/tablero/internal/tui/view"
)

// handleMouseMsg turns pointer input into cursor moves and drag events.
// A press arms the activator; the drag only starts once the pointer has
// moved past the threshold, so plain clicks just select.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (Model, tea.Cmd) {
	x, y := msg.X, msg.Y
	m.pointer = point{X: x, Y: y}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.scrollAt(x, y, -1), nil
	case msg.Button == tea.MouseButtonWheelDown:
		return m.scrollAt(x, y, 1), nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.mousePress(x, y), nil
	case msg.Action == tea.MouseActionMotion:
		return m.mouseMotion(x, y)
	case msg.Action == tea.MouseActionRelease:
		return m.mouseRelease(x, y)
	}
	return m, nil
}

func (m Model) mousePress(x, y int) Model {
	if m.mode != ModeNormal {
		return m
	}

	id := ""
	if card, ok := m.layout.CardAt(x, y); ok {
		id = card.ID
		m.grab = point{X: x - card.Rect.X, Y: y - card.Rect.Y}
		m.cursor = Position{Col: columnIndex(card.Status), Row: card.Index}
	} else if col, ok := m.layout.ColumnAt(x, y); ok {
		m.cursor.Col = col
	}
	m.activator.Press(id, x, y)
	debuglog.LogMouse("press", x, y, id)
	return m
}

func (m Model) mouseMotion(x, y int) (Model, tea.Cmd) {
	if m.mode == ModeMouseDrag {
		return m.dragOver(x, y), nil
	}
	if m.mode != ModeNormal {
		return m, nil
	}

	id, ok := m.activator.Move(x, y)
	if !ok {
		return m, nil
	}
	debuglog.LogMouse("drag-start", x, y, id)
	if _, err := m.apply(board.DragStart, id, "", false); err != nil {
		m.activator.Release()
		return m.withDragError(err)
	}
	m.mode = ModeMouseDrag
	return m.dragOver(x, y), nil
}

func (m Model) dragOver(x, y int) Model {
	target, ok := m.resolveAt(x, y)
	m.target, m.hasTarget = target, ok
	if _, err := m.apply(board.DragOver, "", target.ID, ok); err != nil {
		debuglog.LogError("drag-over", err)
	}
	m.followActive()
	return m
}

func (m Model) mouseRelease(x, y int) (Model, tea.Cmd) {
	wasDrag := m.activator.Release()
	debuglog.LogMouse("release", x, y, "")
	if m.mode != ModeMouseDrag || !wasDrag {
		return m, nil
	}

	target, ok := m.resolveAt(x, y)
	m.mode = ModeNormal
	m.hasTarget = false
	out, err := m.apply(board.DragEnd, "", target.ID, ok)
	if err != nil {
		return m.withDragError(err)
	}
	return m.afterDrop(out)
}

// resolveAt picks the drop target for a pointer at (x, y). The dragged
// card's box keeps the offset at which it was grabbed.
func (m Model) resolveAt(x, y int) (board.Target, bool) {
	box := Rect{X: x - m.grab.X, Y: y - m.grab.Y, W: m.layout.ColW, H: view.CardHeight}
	hits := m.layout.Collisions(x, y, box)
	target, ok := board.Resolve(m.engine.Session().Displayed(), hits)
	debuglog.LogTarget(target, ok)
	return target, ok
}

// scrollAt moves the selection in the column under the pointer.
func (m Model) scrollAt(x, y, delta int) Model {
	if m.mode != ModeNormal {
		return m
	}
	col, ok := m.layout.ColumnAt(x, y)
	if !ok {
		return m
	}
	if col != m.cursor.Col {
		m.cursor = Position{Col: col, Row: m.layout.Columns[col].Offset}
	}
	m.cursor.Row = max(0, m.cursor.Row+delta)
	return m
}
