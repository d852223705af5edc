package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/cli/formatter"
	"github.com/finestedm/procalc/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectImportCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, order, protocol string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			orderDate, ok := domain.ParseDate(order)
			if !ok {
				return fmt.Errorf("invalid order date %q, expected YYYY-MM-DD", order)
			}

			p := &domain.Project{
				Name:      name,
				OrderDate: orderDate,
			}
			if protocol != "" {
				protocolDate, ok := domain.ParseDate(protocol)
				if !ok {
					return fmt.Errorf("invalid protocol date %q, expected YYYY-MM-DD", protocol)
				}
				p.ProtocolDate = &protocolDate
			}

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&order, "order", "", "Order date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&protocol, "protocol", "", "Planned handover date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("order")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				protocol := "-"
				if p.ProtocolDate != nil {
					protocol = domain.FormatDate(*p.ProtocolDate)
				}
				rows = append(rows, []string{
					formatter.TruncID(p.ID),
					p.Name,
					formatter.StatusPill(p.Status),
					domain.FormatDate(p.OrderDate),
					protocol,
				})
			}

			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "NAME", "STATUS", "ORDER", "PROTOCOL"}, rows))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Timeline.Load(ctx, projectID)
			if err != nil {
				return err
			}
			p := view.Project

			fmt.Printf("%s\n", formatter.Header(p.Name))
			fmt.Printf("%s  %s\n", formatter.Dim("ID:"), p.ID)
			fmt.Printf("%s  %s\n", formatter.Dim("Status:"), formatter.StatusPill(p.Status))
			fmt.Printf("%s  %s\n", formatter.Dim("Order date:"), domain.FormatDate(p.OrderDate))
			if p.ProtocolDate != nil {
				fmt.Printf("%s  %s\n", formatter.Dim("Protocol date:"), domain.FormatDate(*p.ProtocolDate))
			}
			fmt.Println()

			if len(view.Items) == 0 {
				fmt.Println(formatter.Dim("(empty timeline)"))
				return nil
			}

			rows := make([][]string, 0, len(view.Items))
			for _, it := range view.Items {
				name := it.Name
				if it.IsChild() {
					name = "· " + name
				}
				rows = append(rows, []string{
					formatter.TruncID(it.ID),
					formatter.KindBadge(it.Kind),
					name + formatter.EstimatedMark(it.DateEstimated),
					domain.FormatDate(it.ProductionStart),
					domain.FormatDate(it.DeliveryEnd),
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "KIND", "NAME", "START", "END"}, rows))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, order, protocol, status string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("order") {
				orderDate, ok := domain.ParseDate(order)
				if !ok {
					return fmt.Errorf("invalid order date %q, expected YYYY-MM-DD", order)
				}
				p.OrderDate = orderDate
			}
			if cmd.Flags().Changed("protocol") {
				if protocol == "" {
					p.ProtocolDate = nil
				} else {
					protocolDate, ok := domain.ParseDate(protocol)
					if !ok {
						return fmt.Errorf("invalid protocol date %q, expected YYYY-MM-DD", protocol)
					}
					p.ProtocolDate = &protocolDate
				}
			}
			if cmd.Flags().Changed("status") {
				p.Status = domain.ProjectStatus(status)
			}
			p.UpdatedAt = time.Now()

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}

			fmt.Printf("Updated project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&order, "order", "", "Order date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&protocol, "protocol", "", "Planned handover date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&status, "status", "", "Project status (active|on_hold|done|archived)")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project and all its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", projectID)
			return nil
		},
	}
}

func newProjectImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportProject(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported project %s [%s]: %d suppliers, %d stages, %d tasks, %d transports, %d dependencies\n",
				result.Project.Name, result.Project.DisplayID(),
				result.SupplierCount, result.StageCount, result.TaskCount,
				result.TransportCount, result.DependencyCount)
			return nil
		},
	}
}
