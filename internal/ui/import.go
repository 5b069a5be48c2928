package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tablero/internal/config"
	"github.com/javiermolinar/tablero/internal/db"
	"github.com/javiermolinar/tablero/internal/task"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import projects and tasks from another database",
		Long: `Copy every project of another tablero database into the current one.
Imported projects and tasks get fresh ids, and every column keeps its order.

Example:
  tablero import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			if a.config.Storage.Backend == config.BackendSQLite {
				destPath, err := resolvePath(a.config.Storage.DBPath)
				if err != nil {
					return err
				}
				if sourcePath == destPath {
					return fmt.Errorf("source database matches current database")
				}
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			projects, tasks, err := importBoards(cmd.Context(), a.repo, sourcePath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d projects and %d tasks from %s\n", projects, tasks, sourcePath)
			return nil
		},
	}

	return cmd
}

// importBoards copies every project of the database at sourcePath into dest.
// Tasks are created column by column in their source order, so the appended
// orders come out dense.
func importBoards(ctx context.Context, dest task.Repository, sourcePath string) (int, int, error) {
	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return 0, 0, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	projects, err := sourceRepo.ListProjects(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("listing source projects: %w", err)
	}

	importedProjects, importedTasks := 0, 0
	for _, sourceProject := range projects {
		tasks, err := sourceRepo.ListTasks(ctx, sourceProject.ID)
		if err != nil {
			return importedProjects, importedTasks, fmt.Errorf("listing tasks of %s: %w", sourceProject.Name, err)
		}

		p := *sourceProject
		p.ID = task.NewProjectID()
		if err := dest.CreateProject(ctx, &p); err != nil {
			return importedProjects, importedTasks, fmt.Errorf("importing project %q: %w", sourceProject.Name, err)
		}
		importedProjects++

		columns := task.GroupAndSort(tasks)
		for _, status := range task.Statuses() {
			for _, sourceTask := range columns[status] {
				newTask := sourceTask.Clone()
				newTask.ID = task.NewTaskID()
				newTask.ProjectID = p.ID
				if err := dest.CreateTask(ctx, newTask); err != nil {
					return importedProjects, importedTasks, fmt.Errorf("importing task %q: %w", sourceTask.Title, err)
				}
				importedTasks++
			}
		}
	}

	return importedProjects, importedTasks, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
