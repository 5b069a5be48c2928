package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tablero/internal/config"
	"github.com/javiermolinar/tablero/internal/db"
	"github.com/javiermolinar/tablero/internal/debuglog"
	"github.com/javiermolinar/tablero/internal/memstore"
	"github.com/javiermolinar/tablero/internal/task"
	"github.com/javiermolinar/tablero/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// ErrNoProjects is returned when a board command runs against an empty store.
var ErrNoProjects = errors.New("no projects yet, run 'tablero seed' or 'tablero projects add'")

// App holds the CLI application state.
type App struct {
	repo    task.Repository
	config  *config.Config
	root    *cobra.Command
	debug   bool   // Enable debug logging
	project string // --project flag
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the config on first use.
func NewApp(repo task.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "tablero",
		Short: "A task board with drag-to-reorder",
		Long: `Tablero is a kanban board for the terminal.

Tasks live in four columns (backlog, todo, in progress, done) and keep a
stable order inside each column. Drag cards with the mouse or move them
with the keyboard; every drop is persisted as a reorder.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			projectID, err := a.resolveProject(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(a.repo, a.config, projectID, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+debuglog.Path+")")
	a.root.PersistentFlags().StringVarP(&a.project, "project", "p", "", "Project id (default: [board] project, then the first project)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.projectsCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.rmCmd())
	a.root.AddCommand(a.compactCmd())
	a.root.AddCommand(a.seedCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tablero %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.ExecuteContext(context.Background())
}

// Close releases the repository.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// ensureRepo opens the configured backend if no repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := OpenRepository(a.config)
	if err != nil {
		return err
	}
	a.repo = repo
	return nil
}

// OpenRepository opens the storage backend selected by cfg.
func OpenRepository(cfg *config.Config) (task.Repository, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		opts := []memstore.Option{memstore.WithLatency(cfg.Latency())}
		if cfg.Mock.Seed {
			opts = append(opts, memstore.WithSeed())
		}
		return memstore.New(opts...), nil
	case config.BackendSQLite, "":
		if dir := filepath.Dir(cfg.Storage.DBPath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
		repo, err := db.New(cfg.Storage.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// resolveProject picks the project for board commands: the --project flag,
// then the configured project, then the first project in the store.
func (a *App) resolveProject(ctx context.Context) (string, error) {
	id := a.project
	if id == "" {
		id = a.config.Board.Project
	}
	if id != "" {
		p, err := a.repo.GetProject(ctx, id)
		if err != nil {
			return "", fmt.Errorf("loading project %s: %w", id, err)
		}
		return p.ID, nil
	}

	projects, err := a.repo.ListProjects(ctx)
	if err != nil {
		return "", fmt.Errorf("listing projects: %w", err)
	}
	if len(projects) == 0 {
		return "", ErrNoProjects
	}
	return projects[0].ID, nil
}
