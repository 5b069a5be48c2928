package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/tablero/internal/board"
	"github.com/javiermolinar/tablero/internal/debuglog"
	"github.com/javiermolinar/tablero/internal/task"
	"github.com/javiermolinar/tablero/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.BoardLoadedMsg:
		return m.handleBoardLoaded(msg)

	case commands.CommitResultMsg:
		return m.handleCommitResult(msg)

	case commands.TaskCreatedMsg:
		m.focusID = msg.Task.ID
		load := m.loadBoard()
		var status tea.Cmd
		m, status = m.withStatus(fmt.Sprintf("Added %q to %s", msg.Task.Title, msg.Task.Status.Label()))
		return m, tea.Batch(load, status)

	case commands.TaskDeletedMsg:
		load := m.loadBoard()
		var status tea.Cmd
		m, status = m.withStatus(fmt.Sprintf("Deleted %q", msg.Title))
		return m, tea.Batch(load, status)

	case commands.CompactedMsg:
		load := m.loadBoard()
		var status tea.Cmd
		m, status = m.withStatus("Columns renumbered")
		return m, tea.Batch(load, status)

	case commands.CopiedMsg:
		return m.withStatus(fmt.Sprintf("Copied %q", msg.Text))

	case commands.ErrMsg:
		m.loading = false
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusErr = true
		m.statusTime = time.Now().Add(errorDuration)
		debuglog.LogError("command", msg.Err)
		return m, clearStatusAfter(errorDuration)

	case commands.StatusMsgCmd:
		return m.withStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleBoardLoaded(msg commands.BoardLoadedMsg) (Model, tea.Cmd) {
	if msg.Seq < m.lastLoad || msg.ProjectID != m.projectID {
		debuglog.LogError("load", fmt.Errorf("load #%d for %s after #%d: %w", msg.Seq, msg.ProjectID, m.lastLoad, board.ErrStaleEvent))
		return m, nil
	}
	m.lastLoad = msg.Seq
	m.loading = false
	m.projects = msg.Projects
	m.project = nil
	for _, p := range msg.Projects {
		if p.ID == msg.ProjectID {
			m.project = p
		}
	}

	err := m.engine.Session().SetAuthoritative(msg.Tasks)
	debuglog.LogSession(m.engine.Session(), "load")
	if m.focusID != "" {
		m.focusTask(m.focusID)
		m.focusID = ""
	}
	if errors.Is(err, board.ErrStaleDrag) {
		m.activator.Release()
		m.mode = ModeNormal
		m.hasTarget = false
		return m.withError("Board changed, drag cancelled")
	}
	return m, nil
}

func (m Model) handleCommitResult(msg commands.CommitResultMsg) (Model, tea.Cmd) {
	debuglog.LogCommit(msg.Commit, msg.Err)
	if err := m.engine.Session().Complete(msg.Tasks, msg.Err); err != nil {
		debuglog.LogError("complete", err)
		return m, nil
	}
	debuglog.LogSession(m.engine.Session(), "complete")
	m.focusTask(msg.Commit.TaskID)

	if msg.Err != nil {
		return m.withError(fmt.Sprintf("Move failed, reverted: %v", msg.Err))
	}
	return m.withStatus(fmt.Sprintf("Moved to %s #%d", msg.Commit.Status.Label(), msg.Commit.Index))
}

// withStatus shows a temporary status message.
func (m Model) withStatus(text string) (Model, tea.Cmd) {
	m.statusMsg = text
	m.statusErr = false
	m.statusTime = time.Now().Add(statusDuration)
	return m, clearStatusAfter(statusDuration)
}

// withError shows a temporary error message.
func (m Model) withError(text string) (Model, tea.Cmd) {
	m.statusMsg = text
	m.statusErr = true
	m.statusTime = time.Now().Add(errorDuration)
	return m, clearStatusAfter(errorDuration)
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// refresh rebuilds the layout from the displayed view and keeps the cursor
// on a card and inside the visible window.
func (m *Model) refresh() {
	v := m.engine.Session().Displayed()
	statuses := task.Statuses()

	m.cursor.Col = max(0, min(m.cursor.Col, len(statuses)-1))
	n := v.Len(statuses[m.cursor.Col])
	m.cursor.Row = max(0, min(m.cursor.Row, n-1))

	m.layout = computeLayout(v, m.width, m.height, m.offsets)
	if visible := m.layout.Visible; visible > 0 {
		off := m.offsets[m.cursor.Col]
		if m.cursor.Row < off {
			off = m.cursor.Row
		}
		if m.cursor.Row >= off+visible {
			off = m.cursor.Row - visible + 1
		}
		if off != m.offsets[m.cursor.Col] {
			m.offsets[m.cursor.Col] = off
			m.layout = computeLayout(v, m.width, m.height, m.offsets)
		}
	}
	for i, col := range m.layout.Columns {
		m.offsets[i] = col.Offset
	}
}

// focusTask moves the cursor onto the task with id, if it is displayed.
func (m *Model) focusTask(id string) {
	status, index, ok := m.engine.Session().Displayed().Locate(id)
	if !ok {
		return
	}
	m.cursor = Position{Col: columnIndex(status), Row: index}
}

// selectedTask returns the task under the cursor.
func (m Model) selectedTask() (*task.Task, bool) {
	return m.engine.Session().Displayed().At(m.cursorStatus(), m.cursor.Row)
}

func (m Model) cursorStatus() task.Status {
	return task.Statuses()[m.cursor.Col]
}

func columnIndex(status task.Status) int {
	for i, s := range task.Statuses() {
		if s == status {
			return i
		}
	}
	return 0
}
