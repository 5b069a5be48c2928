package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/tablero/internal/board"
	"github.com/javiermolinar/tablero/internal/debuglog"
	"github.com/javiermolinar/tablero/internal/task"
	"github.com/javiermolinar/tablero/internal/tui/commands"
	"github.com/javiermolinar/tablero/internal/tui/theme"
)

var errSaving = errors.New("a move is still being saved")

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	debuglog.LogKeyPress(msg.String())

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeMouseDrag:
		return m.handleMouseDragKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	v := m.engine.Session().Displayed()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		m.cursor.Col = max(0, m.cursor.Col-1)
	case "l", "right", "tab":
		m.cursor.Col = min(len(task.Statuses())-1, m.cursor.Col+1)
	case "j", "down":
		m.cursor.Row++
	case "k", "up":
		m.cursor.Row = max(0, m.cursor.Row-1)
	case "g", "home":
		m.cursor.Row = 0
	case "G", "end":
		m.cursor.Row = v.Len(m.cursorStatus()) - 1

	// Board actions
	case " ", "m":
		return m.pickUp()
	case "enter":
		if t, ok := m.selectedTask(); ok {
			m.mode = ModeModal
			m.modalType = ModalTaskDetail
			m.modalTask = t
		}
	case "a", "n":
		m.mode = ModePrompt
		m.prompt.Reset()
		cmd := m.prompt.Focus()
		return m, cmd
	case "d", "x":
		if t, ok := m.selectedTask(); ok {
			m.mode = ModeModal
			m.modalType = ModalConfirmDelete
			m.modalTask = t
		}
	case "y":
		if t, ok := m.selectedTask(); ok {
			return m, commands.CopyToClipboard(t.Title)
		}

	// Data
	case "[", "]":
		return m.cycleProject(msg.String() == "]")
	case "r":
		if m.committing() {
			return m.withError(errSaving.Error())
		}
		cmd := m.loadBoard()
		return m, cmd
	case "c":
		return m, commands.CompactProject(m.repo, m.projectID)
	case "T":
		return m.cycleTheme()
	}
	return m, nil
}

// handleMoveKeys handles keys while a card is lifted with the keyboard.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		return m.moveLifted(m.cursor.Col-1, m.cursor.Row)
	case "l", "right", "tab":
		return m.moveLifted(m.cursor.Col+1, m.cursor.Row)
	case "j", "down":
		return m.moveLifted(m.cursor.Col, m.cursor.Row+1)
	case "k", "up":
		return m.moveLifted(m.cursor.Col, max(0, m.cursor.Row-1))
	case "g", "home":
		return m.moveLifted(m.cursor.Col, 0)
	case "G", "end":
		return m.moveLifted(m.cursor.Col, m.engine.Session().Displayed().Len(m.cursorStatus()))
	case "enter", " ", "m":
		return m.dropLifted()
	case "esc", "q":
		return m.cancelDrag()
	}
	return m, nil
}

// handleMouseDragKeys handles keys while the pointer drags a card.
func (m Model) handleMouseDragKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.activator.Release()
		return m.cancelDrag()
	}
	return m, nil
}

// handlePromptKeys handles the new task prompt.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		if title == "" {
			return m, nil
		}
		return m, commands.CreateTask(m.repo, m.projectID, title, m.cursorStatus())
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompt.Reset()
	m.prompt.Blur()
	m.mode = ModeNormal
}

// handleModalKeys handles the detail and delete confirmation modals.
func (m Model) handleModalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	switch m.modalType {
	case ModalConfirmDelete:
		switch key {
		case "y", "enter":
			t := m.modalTask
			m.closeModal()
			return m, commands.DeleteTask(m.repo, t)
		case "n", "esc", "q":
			m.closeModal()
		}
	case ModalTaskDetail:
		switch key {
		case "esc", "enter", "q":
			m.closeModal()
		case "y":
			return m, commands.CopyToClipboard(m.modalTask.Title)
		}
	default:
		m.closeModal()
	}
	return m, nil
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.modalTask = nil
}

// pickUp lifts the selected card for a keyboard move.
func (m Model) pickUp() (Model, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	if _, err := m.apply(board.DragStart, t.ID, "", false); err != nil {
		return m.withDragError(err)
	}
	m.mode = ModeMove
	return m, nil
}

// moveLifted places the lifted card at index in column col.
func (m Model) moveLifted(col, index int) (Model, tea.Cmd) {
	statuses := task.Statuses()
	if col < 0 || col >= len(statuses) {
		return m, nil
	}
	s := m.engine.Session()
	changed, err := s.MoveTo(statuses[col], index)
	if err != nil {
		return m.withDragError(err)
	}
	if changed {
		debuglog.LogSession(s, "move-to")
	}
	m.followActive()
	return m, nil
}

// dropLifted drops the lifted card where it currently sits.
func (m Model) dropLifted() (Model, tea.Cmd) {
	id, ok := m.engine.Session().ActiveID()
	m.mode = ModeNormal
	out, err := m.apply(board.DragEnd, "", id, ok)
	if err != nil {
		return m.withDragError(err)
	}
	return m.afterDrop(out)
}

// cancelDrag abandons the drag and returns the cursor to the card.
func (m Model) cancelDrag() (Model, tea.Cmd) {
	id, _ := m.engine.Session().ActiveID()
	m.mode = ModeNormal
	m.hasTarget = false
	if _, err := m.apply(board.DragCancel, "", "", false); err != nil {
		return m.withDragError(err)
	}
	m.focusTask(id)
	return m.withStatus("Move cancelled")
}

// afterDrop starts the commit of a drop, if it produced one.
func (m Model) afterDrop(out board.Outcome) (Model, tea.Cmd) {
	if !out.HasCommit {
		return m.withStatus("Dropped outside the board, move cancelled")
	}
	m.followActive()
	commit := commands.CommitDrop(m.engine.Coordinator(), out.Commit)
	m, status := m.withStatus("Saving…")
	return m, tea.Batch(commit, status)
}

// apply stamps and applies one drag event, logging it.
func (m *Model) apply(kind board.EventKind, itemID, targetID string, hasTarget bool) (board.Outcome, error) {
	ev := m.engine.Event(kind, itemID, targetID, hasTarget)
	out, err := m.engine.Apply(ev)
	debuglog.LogDragEvent(ev, out, err)
	if out.Changed {
		debuglog.LogSession(m.engine.Session(), kind.String())
	}
	return out, err
}

func (m Model) withDragError(err error) (Model, tea.Cmd) {
	debuglog.LogError("drag", err)
	if errors.Is(err, board.ErrAlreadyDragging) && m.committing() {
		err = errSaving
	}
	return m.withError(fmt.Sprintf("Move: %v", err))
}

// followActive keeps the cursor on the dragged card.
func (m *Model) followActive() {
	if id, ok := m.engine.Session().ActiveID(); ok {
		m.focusTask(id)
	}
}

func (m Model) committing() bool {
	_, ok := m.engine.Session().State().(board.Committing)
	return ok
}

// cycleProject switches to the next or previous project.
func (m Model) cycleProject(forward bool) (Model, tea.Cmd) {
	if len(m.projects) < 2 {
		return m, nil
	}
	if m.committing() {
		return m.withError(errSaving.Error())
	}
	idx := 0
	for i, p := range m.projects {
		if p.ID == m.projectID {
			idx = i
		}
	}
	step := 1
	if !forward {
		step = len(m.projects) - 1
	}
	next := m.projects[(idx+step)%len(m.projects)]
	cmd := m.switchProject(next.ID)
	return m, cmd
}

// cycleTheme switches to the next embedded theme for this session.
func (m Model) cycleTheme() (Model, tea.Cmd) {
	names := theme.Available()
	next := names[0]
	for i, name := range names {
		if name == m.theme.Name {
			next = names[(i+1)%len(names)]
		}
	}
	t, err := theme.Load(next)
	if err != nil {
		return m.withError(fmt.Sprintf("Theme: %v", err))
	}
	m.theme = t
	m.styles = NewStyles(t)
	m.prompt.PromptStyle = m.styles.PromptStyle
	m.overlay.SetBackground(m.styles.ModalBgColor)
	return m.withStatus("Theme: " + t.Name)
}
