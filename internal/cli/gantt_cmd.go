package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newGanttCmd(app *App) *cobra.Command {
	var project string
	var nameWidth, dayWidth int

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Open the interactive timeline chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("the chart requires an interactive terminal")
			}

			projectID, err := resolveProjectID(context.Background(), app, project)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				newGanttModel(app, projectID, nameWidth, dayWidth),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().IntVar(&nameWidth, "name-width", 24, "Label column width")
	cmd.Flags().IntVar(&dayWidth, "day-width", 2, "Characters per calendar day")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
