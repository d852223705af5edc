package cli

import (
	"context"
	"fmt"

	"github.com/finestedm/procalc/internal/cli/formatter"
	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/timeline"
	"github.com/spf13/cobra"
)

func newLinkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage finish-to-start dependencies",
	}

	cmd.AddCommand(
		newLinkAddCmd(app),
		newLinkListCmd(app),
		newLinkRemoveCmd(app),
	)

	return cmd
}

func newLinkAddCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "add FROM_ID TO_ID",
		Short: "Link two items so TO starts when FROM ends",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			fromID, err := resolveItemID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			toID, err := resolveItemID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			set, err := app.Timeline.Link(ctx, projectID, fromID, toID)
			if err != nil {
				return err
			}

			fmt.Printf("Linked %s -> %s\n", shortID(fromID), shortID(toID))
			printCommitSet(set)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newLinkListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			view, err := app.Timeline.Load(ctx, projectID)
			if err != nil {
				return err
			}
			if len(view.Dependencies) == 0 {
				fmt.Println("No dependencies found.")
				return nil
			}

			names := make(map[string]string, len(view.Items))
			for _, it := range view.Items {
				names[it.ID] = it.Name
			}

			rows := make([][]string, 0, len(view.Dependencies))
			for _, dep := range view.Dependencies {
				rows = append(rows, []string{
					formatter.TruncID(dep.FromID),
					itemLabel(names, dep.FromID),
					"->",
					formatter.TruncID(dep.ToID),
					itemLabel(names, dep.ToID),
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"FROM", "", "", "TO", ""}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newLinkRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove FROM_ID TO_ID",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			fromID, err := resolveItemID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			toID, err := resolveItemID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			if err := app.Timeline.Unlink(ctx, projectID, fromID, toID); err != nil {
				return err
			}
			fmt.Printf("Unlinked %s -> %s\n", shortID(fromID), shortID(toID))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func itemLabel(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return formatter.Dim("(missing)")
}

// printCommitSet summarizes the record rewrites a cascade produced.
func printCommitSet(set timeline.CommitSet) {
	for _, sd := range set.Stages {
		fmt.Printf("  stage %s moved to %s .. %s\n",
			shortID(sd.ID), domain.FormatDate(sd.Start), domain.FormatDate(sd.End))
	}
	for _, td := range set.Tasks {
		fmt.Printf("  task %s moved to %s .. %s\n",
			shortID(td.ID), domain.FormatDate(td.Start), domain.FormatDate(td.End))
	}
	for _, sd := range set.Suppliers {
		fmt.Printf("  supplier %s delivery moved to %s\n",
			shortID(sd.ID), sd.DeliveryDate)
	}
}
