package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finestedm/procalc/internal/cli/formatter"
	"github.com/finestedm/procalc/internal/domain"
	"github.com/spf13/cobra"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage installation stages",
	}

	cmd.AddCommand(
		newStageAddCmd(app),
		newStageListCmd(app),
		newStageUpdateCmd(app),
		newStageRentalCmd(app),
		newStageRemoveCmd(app),
	)

	return cmd
}

func newStageAddCmd(app *App) *cobra.Command {
	var project, name, calcMethod, start, end string
	var seq int
	var suppliers []string
	var workDayHours, manualHours, palletSpots, palletSpotsPerDay float64
	var installers int
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an installation stage",
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
				if err := stageForm(&name, &calcMethod, &start, &end).Run(); err != nil {
					return err
				}
			}
			if name == "" {
				return fmt.Errorf("stage name is required")
			}

			st := &domain.InstallationStage{
				ProjectID:         projectID,
				Name:              name,
				Seq:               seq,
				CalcMethod:        domain.CalcMethod(calcMethod),
				LinkedSupplierIDs: suppliers,
				WorkDayHours:      workDayHours,
				InstallerCount:    installers,
				ManualLaborHours:  manualHours,
				PalletSpots:       palletSpots,
				PalletSpotsPerDay: palletSpotsPerDay,
			}
			if st.StartDate, err = optionalDateFlag(start, "start"); err != nil {
				return err
			}
			if st.EndDate, err = optionalDateFlag(end, "end"); err != nil {
				return err
			}

			if err := app.Stages.Create(ctx, st); err != nil {
				return err
			}

			fmt.Printf("Added stage %s [%s]\n", st.Name, shortID(st.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&name, "name", "", "Stage name")
	cmd.Flags().IntVar(&seq, "seq", 0, "Sequence position among stages")
	cmd.Flags().StringVar(&calcMethod, "calc", "time", "Duration calculation (time|pallets|both)")
	cmd.Flags().StringVar(&start, "start", "", "Explicit start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Explicit end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&suppliers, "suppliers", nil, "Linked supplier IDs")
	cmd.Flags().Float64Var(&workDayHours, "day-hours", 8, "Working hours per day")
	cmd.Flags().IntVar(&installers, "installers", 2, "Installer crew size")
	cmd.Flags().Float64Var(&manualHours, "manual-hours", 0, "Extra manual labor hours")
	cmd.Flags().Float64Var(&palletSpots, "pallets", 0, "Pallet spots to install")
	cmd.Flags().Float64Var(&palletSpotsPerDay, "pallets-per-day", 0, "Pallet spots installed per day")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill fields via a form")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newStageListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			stages, err := app.Stages.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(stages) == 0 {
				fmt.Println("No stages found.")
				return nil
			}

			rows := make([][]string, 0, len(stages))
			for _, st := range stages {
				window := formatter.Dim("(automatic)")
				if st.StartDate != nil && st.EndDate != nil {
					window = fmt.Sprintf("%s .. %s",
						domain.FormatDate(*st.StartDate), domain.FormatDate(*st.EndDate))
				}
				rows = append(rows, []string{
					formatter.TruncID(st.ID),
					strconv.Itoa(st.Seq),
					st.Name,
					string(st.CalcMethod),
					window,
					strconv.Itoa(len(st.LinkedSupplierIDs)),
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "SEQ", "NAME", "CALC", "WINDOW", "SUPPLIERS"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newStageUpdateCmd(app *App) *cobra.Command {
	var name, calcMethod, start, end string
	var seq, installers int
	var suppliers []string
	var workDayHours, manualHours, palletSpots, palletSpotsPerDay float64
	var excluded bool

	cmd := &cobra.Command{
		Use:   "update STAGE_ID",
		Short: "Update an installation stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := app.Stages.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				st.Name = name
			}
			if cmd.Flags().Changed("seq") {
				st.Seq = seq
			}
			if cmd.Flags().Changed("calc") {
				st.CalcMethod = domain.CalcMethod(calcMethod)
			}
			if cmd.Flags().Changed("start") {
				if st.StartDate, err = optionalDateFlag(start, "start"); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if st.EndDate, err = optionalDateFlag(end, "end"); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("suppliers") {
				st.LinkedSupplierIDs = suppliers
			}
			if cmd.Flags().Changed("day-hours") {
				st.WorkDayHours = workDayHours
			}
			if cmd.Flags().Changed("installers") {
				st.InstallerCount = installers
			}
			if cmd.Flags().Changed("manual-hours") {
				st.ManualLaborHours = manualHours
			}
			if cmd.Flags().Changed("pallets") {
				st.PalletSpots = palletSpots
			}
			if cmd.Flags().Changed("pallets-per-day") {
				st.PalletSpotsPerDay = palletSpotsPerDay
			}
			if cmd.Flags().Changed("excluded") {
				st.Excluded = excluded
			}

			if err := app.Stages.Update(ctx, st); err != nil {
				return err
			}
			fmt.Printf("Updated stage %s\n", st.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Stage name")
	cmd.Flags().IntVar(&seq, "seq", 0, "Sequence position among stages")
	cmd.Flags().StringVar(&calcMethod, "calc", "", "Duration calculation (time|pallets|both)")
	cmd.Flags().StringVar(&start, "start", "", "Explicit start date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&end, "end", "", "Explicit end date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringSliceVar(&suppliers, "suppliers", nil, "Linked supplier IDs")
	cmd.Flags().Float64Var(&workDayHours, "day-hours", 0, "Working hours per day")
	cmd.Flags().IntVar(&installers, "installers", 0, "Installer crew size")
	cmd.Flags().Float64Var(&manualHours, "manual-hours", 0, "Extra manual labor hours")
	cmd.Flags().Float64Var(&palletSpots, "pallets", 0, "Pallet spots to install")
	cmd.Flags().Float64Var(&palletSpotsPerDay, "pallets-per-day", 0, "Pallet spots installed per day")
	cmd.Flags().BoolVar(&excluded, "excluded", false, "Exclude stage from the timeline")

	return cmd
}

// newStageRentalCmd configures the two rental-equipment slots.
func newStageRentalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rental",
		Short: "Configure stage rental equipment",
	}

	cmd.AddCommand(
		newStageRentalSetCmd(app),
		newStageRentalOffsetCmd(app),
	)

	return cmd
}

func newStageRentalSetCmd(app *App) *cobra.Command {
	var slot, offset, days int
	var resource string

	cmd := &cobra.Command{
		Use:   "set STAGE_ID",
		Short: "Set a rental slot's resource and window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if slot < 0 || slot >= domain.StageRentalSlots {
				return fmt.Errorf("rental slot must be 0 or 1, got %d", slot)
			}

			st, err := app.Stages.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			st.Rentals[slot] = domain.RentalConfig{
				Resource:   domain.RentalResource(resource),
				OffsetDays: offset,
				Days:       days,
			}
			if err := app.Stages.Update(ctx, st); err != nil {
				return err
			}

			fmt.Printf("Rental slot %d on %s: %s, offset %d, %d days\n",
				slot, st.Name, resource, offset, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&slot, "slot", 0, "Rental slot (0 or 1)")
	cmd.Flags().StringVar(&resource, "resource", "", "Resource (forklift|scissor_lift)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Business-day offset from stage start")
	cmd.Flags().IntVar(&days, "days", 0, "Rental duration in business days")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newStageRentalOffsetCmd(app *App) *cobra.Command {
	var slot, offset int

	cmd := &cobra.Command{
		Use:   "offset STAGE_ID",
		Short: "Move a rental window relative to the stage start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Timeline.SetRentalOffset(context.Background(), args[0], slot, offset); err != nil {
				return err
			}
			fmt.Printf("Rental slot %d offset set to %d\n", slot, offset)
			return nil
		},
	}

	cmd.Flags().IntVar(&slot, "slot", 0, "Rental slot (0 or 1)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Business-day offset from stage start")
	_ = cmd.MarkFlagRequired("offset")

	return cmd
}

func newStageRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove STAGE_ID",
		Short: "Remove a stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Stages.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed stage %s\n", args[0])
			return nil
		},
	}
}

// optionalDateFlag parses an optional YYYY-MM-DD flag value into a *time.Time.
func optionalDateFlag(value, flag string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, ok := domain.ParseDate(value)
	if !ok {
		return nil, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD", flag, value)
	}
	return &d, nil
}
