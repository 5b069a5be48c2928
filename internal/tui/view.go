package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/tablero/internal/task"
	"github.com/javiermolinar/tablero/internal/tui/view"
)

// View renders the model.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		Overlay:          m.overlay,
		EmptyPlaceholder: "Loading board...",
	}
	if m.width == 0 || m.height == 0 {
		return state
	}

	state.BaseContent = m.renderAppContent()
	if m.layout.Visible == 0 {
		return state
	}

	if m.mode == ModeMouseDrag {
		if id, ok := m.engine.Session().ActiveID(); ok {
			if t, ok := m.engine.Session().Displayed().Task(id); ok {
				state.Floating = m.renderCard(t, m.styles.FloatingCard, "")
				state.FloatX = m.pointer.X - m.grab.X
				state.FloatY = m.pointer.Y - m.grab.Y
			}
		}
	}
	if m.mode == ModeModal && m.modalType != ModalNone {
		state.ShowModal = true
		state.ModalContent = m.renderModal()
	}
	return state
}

func (m Model) renderAppContent() string {
	if m.layout.Visible == 0 {
		msg := fmt.Sprintf("Terminal too small\n%dx%d", m.width, m.height)
		return view.PlaceBox(m.width, m.height, msg, "")
	}
	return strings.Join([]string{
		m.renderHeader(),
		"",
		m.renderBoard(),
		m.renderFooter(),
	}, "\n")
}

func (m Model) renderHeader() string {
	name := m.projectID
	position := ""
	if m.project != nil {
		name = m.project.Name
	}
	for i, p := range m.projects {
		if p.ID == m.projectID {
			position = fmt.Sprintf("(%d/%d)", i+1, len(m.projects))
		}
	}
	left := m.styles.TitleStyle.Render("tablero") +
		m.styles.HeaderStyle.Render(name) +
		m.styles.HeaderMutedStyle.Render(position)

	right := ""
	switch {
	case m.mode == ModeMove:
		right = m.styles.MoveModeStyle.Render("MOVE")
	case m.mode == ModeMouseDrag:
		right = m.styles.MoveModeStyle.Render("DRAG")
	case m.committing():
		right = m.styles.ModeStyle.Render("saving…")
	case m.loading:
		right = m.styles.ModeStyle.Render("loading…")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return view.FitLine(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) boardKey() renderKey {
	s := m.engine.Session()
	return renderKey{
		revision:  s.Revision(),
		state:     s.State().String(),
		width:     m.width,
		height:    m.height,
		cursor:    m.cursor,
		mode:      m.mode,
		offsets:   fmt.Sprint(m.offsets),
		target:    string(m.target.Status),
		hasTarget: m.hasTarget,
		day:       m.now().YearDay(),
		theme:     m.theme.Name,
	}
}

// renderBoard draws the columns, reusing the last drawing when nothing it
// depends on has changed.
func (m Model) renderBoard() string {
	key := m.boardKey()
	if out, ok := m.renderCache.get(key); ok {
		return out
	}

	s := m.engine.Session()
	v := s.Displayed()
	columns := make([][]string, 0, len(m.layout.Columns))
	for i, col := range m.layout.Columns {
		cards := make([]string, 0, len(col.Cards))
		for _, c := range col.Cards {
			t, _ := v.At(col.Status, c.Index)
			styles, meta := m.cardStyleFor(t, i, c.Index)
			cards = append(cards, m.renderCard(t, styles, meta))
		}
		columns = append(columns, view.RenderColumn(view.ColumnViewState{
			Width:  m.layout.ColW,
			Height: m.layout.BodyH,
			Header: m.columnHeader(col),
			Rule:   m.columnRule(col),
			Cards:  cards,
			Empty:  m.styles.EmptyStyle.Render(" no tasks"),
		}))
	}

	out := view.JoinColumns(columns, strings.Repeat(" ", columnGap))
	out = view.PadLinesWithBackground(out, m.width, m.layout.BodyH, "")
	m.renderCache.put(key, out)
	return out
}

// cardStyleFor picks the styles of the card at (col, row) and an optional
// replacement for its metadata line.
func (m Model) cardStyleFor(t *task.Task, col, row int) (CardStyles, string) {
	s := m.engine.Session()
	if id, ok := s.ActiveID(); ok && id == t.ID {
		switch {
		case m.committing():
			return m.styles.SavingCard, "saving…"
		case m.mode == ModeMouseDrag:
			return m.styles.GhostCard, ""
		default:
			return m.styles.LiftedCard, ""
		}
	}
	selected := m.mode != ModeMouseDrag && col == m.cursor.Col && row == m.cursor.Row
	return m.styles.cardStyles(t.Status, selected), ""
}

func (m Model) renderCard(t *task.Task, cs CardStyles, meta string) string {
	now := m.now()
	metaStyle := cs.Meta
	if meta == "" {
		meta = view.CardMeta(t, now)
		if t.IsOverdue(now) {
			metaStyle = m.styles.OverdueStyle
		}
	}
	markStyle := cs.Title
	if ps, ok := m.styles.PriorityStyles[t.Priority]; ok {
		markStyle = ps
	}
	return view.RenderCard(view.CardViewState{
		Width:      m.layout.ColW,
		Mark:       view.PriorityMark(t.Priority),
		Title:      t.Title,
		Meta:       meta,
		Style:      cs.Card,
		MarkStyle:  markStyle,
		TitleStyle: cs.Title,
		MetaStyle:  metaStyle,
	})
}

func (m Model) columnHeader(col ColumnRegion) string {
	label := col.Status.Label()
	count := m.styles.ColumnCountStyle.Render(fmt.Sprintf(" %d", col.Total))
	if m.mode == ModeMouseDrag && m.hasTarget && m.target.Status == col.Status {
		return m.styles.ColumnDropStyle.Render(" "+label+" ") + count
	}
	return m.styles.ColumnTitleStyles[col.Status].Render(" "+label) + count
}

func (m Model) columnRule(col ColumnRegion) string {
	above, below := col.Hidden()
	indicator := ""
	if above > 0 || below > 0 {
		indicator = fmt.Sprintf(" ↑%d ↓%d ", above, below)
	}
	fill := max(0, m.layout.ColW-lipgloss.Width(indicator))
	return m.styles.RuleStyle.Render(strings.Repeat("─", fill)) + m.styles.ColumnCountStyle.Render(indicator)
}

func (m Model) renderFooter() string {
	statusText := m.statusMsg
	statusStyle := m.styles.StatusStyle
	if m.statusErr {
		statusStyle = m.styles.StatusErrorStyle
	}
	if statusText == "" {
		statusText = m.boardSummary()
	}

	return view.RenderFooter(view.FooterModel{
		Width:       m.width,
		StatusText:  statusText,
		HelpText:    m.helpText(),
		PromptLine:  m.prompt.View(),
		ShowPrompt:  m.mode == ModePrompt,
		StatusStyle: statusStyle,
		HelpStyle:   m.styles.HelpStyle,
	})
}

func (m Model) boardSummary() string {
	v := m.engine.Session().Displayed()
	done := v.Len(task.StatusDone)
	return fmt.Sprintf("%d tasks, %d done", v.Count(), done)
}

func (m Model) helpText() string {
	switch m.mode {
	case ModeMove:
		return "h/l column  j/k position  g/G top/bottom  enter drop  esc cancel"
	case ModeMouseDrag:
		return "release to drop  esc cancel"
	case ModePrompt:
		return fmt.Sprintf("enter add to %s  esc cancel", m.cursorStatus().Label())
	case ModeModal:
		if m.modalType == ModalConfirmDelete {
			return "y delete  n cancel"
		}
		return "esc close  y copy title"
	default:
		return "h/l/j/k select  space move  enter details  a add  d delete  y copy  [/] project  T theme  r reload  c compact  q quit"
	}
}

// displayedPosition returns the column and position of t on the board.
func (m Model) displayedPosition(t *task.Task) (task.Status, int, int) {
	v := m.engine.Session().Displayed()
	status, index, ok := v.Locate(t.ID)
	if !ok {
		return t.Status, t.Order, v.Len(t.Status)
	}
	return status, index, v.Len(status)
}
