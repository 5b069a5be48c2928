package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/tablero/internal/dateutil"
	"github.com/javiermolinar/tablero/internal/task"
	"github.com/javiermolinar/tablero/internal/tui/view"
)

const maxModalWidth = 60

func (m Model) modalWidth() int {
	return max(24, min(maxModalWidth, m.width-4))
}

func (m Model) renderModal() string {
	if m.modalTask == nil {
		return ""
	}
	switch m.modalType {
	case ModalConfirmDelete:
		return m.renderConfirmDelete(m.modalTask)
	case ModalTaskDetail:
		return m.renderTaskDetail(m.modalTask)
	}
	return ""
}

func (m Model) renderConfirmDelete(t *task.Task) string {
	s := m.styles.Modal
	inner := m.modalWidth() - 6
	body := s.Body.Width(inner).Render(view.Truncate(t.Title, inner)) + "\n" +
		m.styles.ModalMeta.Width(inner).Render("The rest of the column keeps its positions.")
	return view.RenderModal(view.ModalViewState{
		Title:   "Delete task?",
		Body:    body,
		Actions: []view.ModalAction{{Key: "y", Label: "Delete"}, {Key: "n", Label: "Cancel"}},
		Buttons: true,
		Styles:  s,
	})
}

func (m Model) renderTaskDetail(t *task.Task) string {
	s := m.styles.Modal
	inner := m.modalWidth() - 6
	now := m.now()

	status, index, total := m.displayedPosition(t)
	rows := [][2]string{
		{"Status", status.Label()},
		{"Priority", string(t.Priority)},
		{"Position", fmt.Sprintf("%d of %d", index+1, total)},
	}
	if t.Assignee != nil {
		rows = append(rows, [2]string{"Assignee", fmt.Sprintf("%s (%s)", t.Assignee.Name, t.Assignee.Initials)})
	}
	if t.Due != nil {
		rows = append(rows, [2]string{"Due", dateutil.FormatDue(*t.Due, now)})
	}
	if len(t.Tags) > 0 {
		rows = append(rows, [2]string{"Tags", strings.Join(t.Tags, ", ")})
	}

	lines := make([]string, 0, len(rows)+2)
	for _, r := range rows {
		label := m.styles.ModalLabel.Render(r[0])
		value := s.Body.Width(inner - lipgloss.Width(label)).Render(r[1])
		lines = append(lines, label+value)
	}
	if desc := m.renderDescription(t.Description, inner); desc != "" {
		lines = append(lines, "", desc)
	}

	return view.RenderModal(view.ModalViewState{
		Title:   view.Truncate(t.Title, inner),
		Body:    strings.Join(lines, "\n"),
		Actions: []view.ModalAction{{Key: "esc", Label: "close"}, {Key: "y", Label: "copy title"}},
		Styles:  s,
	})
}

// renderDescription renders the markdown description wrapped to width. It
// falls back to the raw text if glamour fails.
func (m Model) renderDescription(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	style := styles.DarkStyle
	if m.theme != nil && m.theme.IsLight() {
		style = styles.LightStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
