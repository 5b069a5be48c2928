package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/tablero/internal/dateutil"
	"github.com/javiermolinar/tablero/internal/task"
)

// PrintOpts configures board printing.
type PrintOpts struct {
	Width   int       // total width (0 = terminal width)
	Verbose bool      // print descriptions under titles
	Now     time.Time // reference time for due dates (zero = time.Now)
}

func (o PrintOpts) width() int {
	if o.Width > 0 {
		return o.Width
	}
	return termWidth()
}

func (o PrintOpts) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// minTitleWidth keeps titles readable on narrow terminals.
const minTitleWidth = 12

// PrintBoard prints the columns present in cols, in board order.
func PrintBoard(w io.Writer, p *task.Project, cols task.Grouping, opts PrintOpts) {
	width := opts.width()
	now := opts.now()

	fmt.Fprintf(w, "=== %s %s ===\n", formatHeader(p.Name), formatMuted("("+p.ID+")"))

	idWidth := 0
	for _, status := range task.Statuses() {
		for _, t := range cols[status] {
			idWidth = max(idWidth, runewidth.StringWidth(t.ID))
		}
	}

	for _, status := range task.Statuses() {
		col, ok := cols[status]
		if !ok {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", formatStatus(status, status.Label()), formatMuted(fmt.Sprintf("(%d)", len(col))))
		if len(col) == 0 {
			fmt.Fprintf(w, "  %s\n", formatMuted("empty"))
			continue
		}
		for i, t := range col {
			fmt.Fprintln(w, taskRow(t, i, idWidth, width, now))
			if opts.Verbose && t.Description != "" {
				desc := runewidth.Truncate(firstLine(t.Description), max(width-8, minTitleWidth), "…")
				fmt.Fprintf(w, "        %s\n", formatMuted(desc))
			}
		}
	}
}

// taskRow renders one card as a single line no wider than width, unless the
// fixed columns alone exceed it.
func taskRow(t *task.Task, index, idWidth, width int, now time.Time) string {
	prefix := fmt.Sprintf("  %2d  %-*s  ", index, idWidth, t.ID)
	mark := priorityMark(t.Priority)

	var suffix []string
	var suffixPlain []string
	if t.Assignee != nil {
		suffix = append(suffix, t.Assignee.Initials)
		suffixPlain = append(suffixPlain, t.Assignee.Initials)
	}
	if len(t.Tags) > 0 {
		tags := "#" + strings.Join(t.Tags, " #")
		suffix = append(suffix, formatMuted(tags))
		suffixPlain = append(suffixPlain, tags)
	}
	if t.Due != nil {
		due := "due " + dateutil.FormatDue(*t.Due, now)
		suffixPlain = append(suffixPlain, due)
		if t.IsOverdue(now) {
			due = formatDanger(due)
		}
		suffix = append(suffix, due)
	}

	plainRest := strings.Join(suffixPlain, "  ")
	fixed := runewidth.StringWidth(prefix) + runewidth.StringWidth(mark) + 1
	if plainRest != "" {
		fixed += 2 + runewidth.StringWidth(plainRest)
	}
	titleWidth := max(width-fixed, minTitleWidth)

	title := runewidth.FillRight(runewidth.Truncate(t.Title, titleWidth, "…"), titleWidth)
	if t.IsDone() {
		title = formatMuted(title)
	}

	row := prefix + formatPriority(t.Priority, mark) + " " + title
	if plainRest != "" {
		row += "  " + strings.Join(suffix, "  ")
	}
	return strings.TrimRight(row, " ")
}

// priorityMark is a fixed-width priority indicator.
func priorityMark(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "!!"
	case task.PriorityMedium:
		return "! "
	default:
		return "  "
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// PrintTask prints the full detail of one task. The description is rendered
// as markdown.
func PrintTask(w io.Writer, t *task.Task, p *task.Project, cols task.Grouping, opts PrintOpts) {
	now := opts.now()
	index := task.IndexOf(cols[t.Status], t.ID)

	fmt.Fprintf(w, "%s %s\n", formatHeader(t.Title), formatMuted("("+t.ID+")"))
	fmt.Fprintf(w, "  Project:  %s\n", p.Name)
	fmt.Fprintf(w, "  Status:   %s  %s\n", formatStatus(t.Status, t.Status.Label()),
		formatMuted(fmt.Sprintf("position %d of %d", index+1, len(cols[t.Status]))))
	fmt.Fprintf(w, "  Priority: %s\n", formatPriority(t.Priority, string(t.Priority)))
	if t.Assignee != nil {
		fmt.Fprintf(w, "  Assignee: %s (%s)\n", t.Assignee.Name, t.Assignee.Initials)
	}
	if t.Due != nil {
		due := fmt.Sprintf("%s (%s)", t.Due.Format(dateutil.Layout), dateutil.FormatDue(*t.Due, now))
		if t.IsOverdue(now) {
			due = formatDanger(due)
		}
		fmt.Fprintf(w, "  Due:      %s\n", due)
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(w, "  Tags:     %s\n", strings.Join(t.Tags, ", "))
	}
	fmt.Fprintf(w, "  Updated:  %s\n", formatMuted(t.UpdatedAt.Format("2006-01-02 15:04")))

	if md := renderMarkdown(t.Description, opts.width()); md != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, md)
	}
}

// renderMarkdown renders md for the terminal. Plain output is used when
// colors are off so piped output stays readable.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	style := styles.DarkStyle
	if color.NoColor {
		style = styles.NoTTYStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
