package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/finestedm/procalc/internal/cli/formatter"
	"github.com/finestedm/procalc/internal/domain"
	"github.com/spf13/cobra"
)

func newSupplierCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supplier",
		Short: "Manage project suppliers",
	}

	cmd.AddCommand(
		newSupplierAddCmd(app),
		newSupplierListCmd(app),
		newSupplierItemCmd(app),
		newSupplierSetDeliveryCmd(app),
		newSupplierRemoveCmd(app),
	)

	return cmd
}

func newSupplierAddCmd(app *App) *cobra.Command {
	var project, name, delivery string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a supplier to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			if interactive {
				if !app.IsInteractive() {
					return fmt.Errorf("interactive mode requires a terminal")
				}
				if err := supplierForm(&name, &delivery).Run(); err != nil {
					return err
				}
			}
			if name == "" {
				return fmt.Errorf("supplier name is required")
			}

			s := &domain.Supplier{
				ProjectID:    projectID,
				Name:         name,
				DeliveryDate: delivery,
			}
			if err := app.Suppliers.Create(ctx, s); err != nil {
				return err
			}

			fmt.Printf("Added supplier %s [%s]\n", s.Name, shortID(s.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&name, "name", "", "Supplier name")
	cmd.Flags().StringVar(&delivery, "delivery", "", "Delivery date (YYYY-MM-DD, ASAP, or empty)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill fields via a form")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newSupplierListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's suppliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			suppliers, err := app.Suppliers.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(suppliers) == 0 {
				fmt.Println("No suppliers found.")
				return nil
			}

			rows := make([][]string, 0, len(suppliers))
			for _, s := range suppliers {
				delivery := s.DeliveryDate
				if delivery == "" {
					delivery = formatter.Dim("(unset)")
				}
				rows = append(rows, []string{
					formatter.TruncID(s.ID),
					s.Name,
					delivery,
					strconv.Itoa(len(s.LineItems)),
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "NAME", "DELIVERY", "ITEMS"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// newSupplierItemCmd manages line items on a supplier's order.
func newSupplierItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage supplier line items",
	}

	cmd.AddCommand(
		newSupplierItemAddCmd(app),
		newSupplierItemListCmd(app),
		newSupplierItemRemoveCmd(app),
	)

	return cmd
}

func newSupplierItemAddCmd(app *App) *cobra.Command {
	var name string
	var quantity int
	var unitMinutes float64
	var excluded bool

	cmd := &cobra.Command{
		Use:   "add SUPPLIER_ID",
		Short: "Add a line item to a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Suppliers.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			s.LineItems = append(s.LineItems, domain.LineItem{
				Name:        name,
				Quantity:    quantity,
				UnitMinutes: unitMinutes,
				Excluded:    excluded,
			})
			if err := app.Suppliers.Update(ctx, s); err != nil {
				return err
			}

			fmt.Printf("Added item %s to %s\n", name, s.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Article name")
	cmd.Flags().IntVar(&quantity, "qty", 1, "Quantity")
	cmd.Flags().Float64Var(&unitMinutes, "minutes", 0, "Assembly minutes per unit")
	cmd.Flags().BoolVar(&excluded, "excluded", false, "Exclude from labor totals")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSupplierItemListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list SUPPLIER_ID",
		Short: "List a supplier's line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Suppliers.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(s.LineItems) == 0 {
				fmt.Println("No line items.")
				return nil
			}

			rows := make([][]string, 0, len(s.LineItems))
			for _, li := range s.LineItems {
				excluded := ""
				if li.Excluded {
					excluded = formatter.Dim("excluded")
				}
				rows = append(rows, []string{
					formatter.TruncID(li.ID),
					li.Name,
					strconv.Itoa(li.Quantity),
					strconv.FormatFloat(li.UnitMinutes, 'f', -1, 64),
					excluded,
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "NAME", "QTY", "MIN/UNIT", ""}, rows))
			return nil
		},
	}
}

func newSupplierItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SUPPLIER_ID ITEM_ID",
		Short: "Remove a line item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Suppliers.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			kept := s.LineItems[:0]
			removed := false
			for _, li := range s.LineItems {
				if li.ID == args[1] {
					removed = true
					continue
				}
				kept = append(kept, li)
			}
			if !removed {
				return fmt.Errorf("line item not found: %q", args[1])
			}
			s.LineItems = kept

			if err := app.Suppliers.Update(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Removed item %s\n", args[1])
			return nil
		},
	}
}

func newSupplierSetDeliveryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-delivery SUPPLIER_ID DATE",
		Short: "Set a supplier's delivery date (YYYY-MM-DD, ASAP, or empty)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Suppliers.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			s.DeliveryDate = args[1]
			if err := app.Suppliers.Update(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Delivery for %s set to %s\n", s.Name, args[1])
			return nil
		},
	}
}

func newSupplierRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SUPPLIER_ID",
		Short: "Remove a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Suppliers.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed supplier %s\n", args[0])
			return nil
		},
	}
}
