package ui

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/tablero/internal/task"
)

func (a *App) projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printProjects(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects with their task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printProjects(cmd)
		},
	})
	cmd.AddCommand(a.projectsAddCmd())
	cmd.AddCommand(a.projectsRenameCmd())
	cmd.AddCommand(a.projectsRmCmd())
	return cmd
}

func (a *App) printProjects(cmd *cobra.Command) error {
	if err := a.ensureRepo(); err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	projects, err := a.repo.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects yet.")
		return nil
	}

	for _, p := range projects {
		tasks, err := a.repo.ListTasks(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("listing tasks of %s: %w", p.ID, err)
		}
		cols := task.GroupAndSort(tasks)
		fmt.Fprintf(out, "%s  %s  %s\n", formatMuted(p.ID), formatHeader(p.Name),
			formatMuted(fmt.Sprintf("%d tasks, %d done", cols.Count(), len(cols[task.StatusDone]))))
		if p.Description != "" {
			fmt.Fprintf(out, "       %s\n", p.Description)
		}
	}
	return nil
}

func (a *App) projectsAddCmd() *cobra.Command {
	var (
		description string
		colorHex    string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a project",
		Example: `  tablero projects add "Website Redesign" --color "#3b82f6"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			p, err := task.NewProject(args[0], description, colorHex)
			if err != nil {
				return err
			}
			if err := a.repo.CreateProject(cmd.Context(), p); err != nil {
				return fmt.Errorf("creating project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s: %s\n", p.ID, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	cmd.Flags().StringVar(&colorHex, "color", "", "Accent color (hex)")
	return cmd
}

func (a *App) projectsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [project-id] [name]",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			name := args[1]
			p, err := a.repo.UpdateProject(cmd.Context(), args[0], task.ProjectUpdate{Name: &name})
			if err != nil {
				return fmt.Errorf("renaming project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed project %s to %s\n", p.ID, p.Name)
			return nil
		},
	}
}

func (a *App) projectsRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm [project-id]",
		Short: "Delete a project and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			p, err := a.repo.GetProject(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading project: %w", err)
			}
			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete project %q and all of its tasks?", p.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := a.repo.DeleteProject(ctx, p.ID); err != nil {
				return fmt.Errorf("deleting project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", p.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirm asks a yes/no question, defaulting to no.
func confirm(message string) (bool, error) {
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok); err != nil {
		return false, fmt.Errorf("confirmation: %w", err)
	}
	return ok, nil
}
