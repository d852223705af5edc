package cli

import (
	"context"
	"fmt"

	"github.com/finestedm/procalc/internal/cli/formatter"
	"github.com/finestedm/procalc/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage custom tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom task to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			ct := &domain.CustomTask{
				ProjectID: projectID,
				Name:      name,
			}
			if ct.StartDate, err = optionalDateFlag(start, "start"); err != nil {
				return err
			}
			if ct.EndDate, err = optionalDateFlag(end, "end"); err != nil {
				return err
			}

			if err := app.Tasks.Create(ctx, ct); err != nil {
				return err
			}

			fmt.Printf("Added task %s [%s]\n", ct.Name, shortID(ct.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's custom tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			rows := make([][]string, 0, len(tasks))
			for _, ct := range tasks {
				window := formatter.Dim("(automatic)")
				if ct.StartDate != nil && ct.EndDate != nil {
					window = fmt.Sprintf("%s .. %s",
						domain.FormatDate(*ct.StartDate), domain.FormatDate(*ct.EndDate))
				}
				rows = append(rows, []string{
					formatter.TruncID(ct.ID),
					ct.Name,
					window,
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable([]string{"ID", "NAME", "WINDOW"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var name, start, end string

	cmd := &cobra.Command{
		Use:   "update TASK_ID",
		Short: "Update a custom task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ct, err := app.Tasks.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				ct.Name = name
			}
			if cmd.Flags().Changed("start") {
				if ct.StartDate, err = optionalDateFlag(start, "start"); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if ct.EndDate, err = optionalDateFlag(end, "end"); err != nil {
					return err
				}
			}

			if err := app.Tasks.Update(ctx, ct); err != nil {
				return err
			}
			fmt.Printf("Updated task %s\n", ct.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, empty clears)")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TASK_ID",
		Short: "Remove a custom task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", args[0])
			return nil
		},
	}
}
