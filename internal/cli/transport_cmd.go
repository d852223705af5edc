package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/finestedm/procalc/internal/cli/formatter"
	"github.com/finestedm/procalc/internal/domain"
	"github.com/spf13/cobra"
)

func newTransportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transport",
		Short: "Manage combined transport groups",
	}

	cmd.AddCommand(
		newTransportAddCmd(app),
		newTransportListCmd(app),
		newTransportUpdateCmd(app),
		newTransportExpandCmd(app),
		newTransportRemoveCmd(app),
	)

	return cmd
}

func newTransportAddCmd(app *App) *cobra.Command {
	var project, name string
	var suppliers []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Fold supplier deliveries into one transport",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			if len(suppliers) < 2 {
				return fmt.Errorf("a transport group needs at least two suppliers")
			}

			tr := &domain.TransportGroup{
				ProjectID:         projectID,
				Name:              name,
				LinkedSupplierIDs: suppliers,
			}
			if err := app.Transports.Create(ctx, tr); err != nil {
				return err
			}

			fmt.Printf("Added transport %s [%s] with %d suppliers\n",
				tr.Name, shortID(tr.ID), len(suppliers))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&name, "name", "", "Transport name")
	cmd.Flags().StringSliceVar(&suppliers, "suppliers", nil, "Linked supplier IDs (two or more)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("suppliers")

	return cmd
}

func newTransportListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's transport groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			transports, err := app.Transports.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(transports) == 0 {
				fmt.Println("No transport groups found.")
				return nil
			}

			rows := make([][]string, 0, len(transports))
			for _, tr := range transports {
				expanded := ""
				if tr.Expanded {
					expanded = "expanded"
				}
				rows = append(rows, []string{
					formatter.TruncID(tr.ID),
					tr.Name,
					strconv.Itoa(len(tr.LinkedSupplierIDs)),
					expanded,
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "NAME", "SUPPLIERS", ""}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTransportUpdateCmd(app *App) *cobra.Command {
	var name string
	var suppliers []string

	cmd := &cobra.Command{
		Use:   "update TRANSPORT_ID",
		Short: "Update a transport group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tr, err := app.Transports.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				tr.Name = name
			}
			if cmd.Flags().Changed("suppliers") {
				if len(suppliers) < 2 {
					return fmt.Errorf("a transport group needs at least two suppliers")
				}
				tr.LinkedSupplierIDs = suppliers
			}

			if err := app.Transports.Update(ctx, tr); err != nil {
				return err
			}
			fmt.Printf("Updated transport %s\n", tr.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Transport name")
	cmd.Flags().StringSliceVar(&suppliers, "suppliers", nil, "Linked supplier IDs (two or more)")

	return cmd
}

func newTransportExpandCmd(app *App) *cobra.Command {
	var collapse bool

	cmd := &cobra.Command{
		Use:   "expand TRANSPORT_ID",
		Short: "Show or hide a transport's child rows on the chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expanded := !collapse
			if err := app.Transports.SetExpanded(context.Background(), args[0], expanded); err != nil {
				return err
			}
			if expanded {
				fmt.Printf("Transport %s expanded\n", args[0])
			} else {
				fmt.Printf("Transport %s collapsed\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&collapse, "collapse", false, "Hide child rows instead")

	return cmd
}

func newTransportRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TRANSPORT_ID",
		Short: "Remove a transport group (suppliers are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Transports.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed transport %s\n", args[0])
			return nil
		},
	}
}
