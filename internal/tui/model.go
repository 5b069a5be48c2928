// Package tui provides the terminal user interface for tablero.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/tablero/internal/board"
	"github.com/javiermolinar/tablero/internal/config"
	"github.com/javiermolinar/tablero/internal/debuglog"
	"github.com/javiermolinar/tablero/internal/task"
	"github.com/javiermolinar/tablero/internal/tui/commands"
	"github.com/javiermolinar/tablero/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal    Mode = iota
	ModeMove           // Keyboard drag: the selected card is lifted
	ModeMouseDrag      // Pointer drag in progress
	ModePrompt         // Typing the title of a new task
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalTaskDetail
	ModalConfirmDelete
)

// Position is a cursor position on the board.
type Position struct {
	Col int // index into task.Statuses()
	Row int // index within the column
}

type point struct {
	X, Y int
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   task.Repository
	config *config.Config
	now    func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Board state. The engine owns the drag session.
	engine    *board.Engine
	activator *board.Activator
	loads     *board.Sequencer
	lastLoad  uint64
	projectID string
	project   *task.Project
	projects  []*task.Project
	loading   bool

	// Cursor and scrolling
	cursor  Position
	focusID string // task to select once the next load lands
	offsets []int  // first visible card per column
	mode    Mode

	// Pointer drag state
	pointer   point
	grab      point // pointer offset inside the grabbed card
	target    board.Target
	hasTarget bool

	// Modal state
	modalType ModalType
	modalTask *task.Task

	// Overlay state
	overlay OverlayModel

	// Components
	prompt textinput.Model

	// Terminal dimensions and layout
	width  int
	height int
	layout Layout

	// Cached render data
	renderCache *RenderCache

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time

	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock sets the clock used for due dates.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model for projectID.
func New(repo task.Repository, cfg *config.Config, projectID string, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Prompt = "New task: "
	ti.PromptStyle = styles.PromptStyle

	m := &Model{
		repo:        repo,
		config:      cfg,
		now:         time.Now,
		theme:       t,
		styles:      styles,
		engine:      board.NewEngine(repo, projectID),
		activator:   board.NewActivator(cfg.Board.DragThreshold),
		loads:       &board.Sequencer{},
		projectID:   projectID,
		offsets:     make([]int, len(task.Statuses())),
		mode:        ModeNormal,
		loading:     true,
		prompt:      ti,
		overlay:     NewOverlayModel(styles.ModalBgColor),
		renderCache: &RenderCache{},
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.loadBoard()
}

// loadBoard requests a fresh copy of the current project.
// Results older than the most recent request are dropped.
func (m *Model) loadBoard() tea.Cmd {
	m.lastLoad = m.loads.Next()
	m.loading = true
	return commands.LoadBoard(m.repo, m.projectID, m.lastLoad)
}

// switchProject points the board at projectID with a fresh engine.
func (m *Model) switchProject(projectID string) tea.Cmd {
	m.projectID = projectID
	m.engine = board.NewEngine(m.repo, projectID)
	m.cursor = Position{}
	for i := range m.offsets {
		m.offsets[i] = 0
	}
	return m.loadBoard()
}

// Run starts the TUI on projectID.
func Run(repo task.Repository, cfg *config.Config, projectID string, debug bool) error {
	if err := debuglog.Init(debug); err != nil {
		return err
	}
	defer debuglog.Close()

	model := New(repo, cfg, projectID)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)
	_, err := p.Run()
	return err
}
