package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/calendar"
	"github.com/finestedm/procalc/internal/cli/formatter"
	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/timeline"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Inspect and edit the project timeline",
	}

	cmd.AddCommand(
		newTimelineShowCmd(app),
		newTimelineMoveCmd(app),
		newTimelineResizeCmd(app),
		newTimelineOrderCmd(app),
	)

	return cmd
}

func newTimelineShowCmd(app *App) *cobra.Command {
	var project string
	var nameWidth, dayWidth int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the timeline chart",
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

			opts := formatter.GanttOptions{
				NameWidth: nameWidth,
				DayWidth:  dayWidth,
				From:      view.Project.OrderDate,
			}
			if view.Project.ProtocolDate != nil {
				opts.To = *view.Project.ProtocolDate
			}

			fmt.Printf("%s\n", formatter.Header(view.Project.Name))
			fmt.Print(formatter.RenderGantt(view.Items, opts))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().IntVar(&nameWidth, "name-width", 24, "Label column width")
	cmd.Flags().IntVar(&dayWidth, "day-width", 2, "Characters per calendar day")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// newTimelineMoveCmd shifts an item's whole window by business days,
// cascading the change through the dependency graph.
func newTimelineMoveCmd(app *App) *cobra.Command {
	var project string
	var days int

	cmd := &cobra.Command{
		Use:   "move ITEM_ID",
		Short: "Shift an item by a number of business days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			view, err := app.Timeline.Load(ctx, projectID)
			if err != nil {
				return err
			}
			start, end, ok := findItemWindow(view.Items, itemID)
			if !ok {
				return fmt.Errorf("item %s not on timeline", itemID)
			}

			start = calendar.AddBusinessDays(start, days)
			end = calendar.AddBusinessDays(end, days)

			set, err := app.Timeline.CommitEdit(ctx, projectID, itemID, start, end)
			if err != nil {
				return err
			}

			fmt.Printf("Moved %s to %s .. %s\n",
				shortID(itemID), domain.FormatDate(start), domain.FormatDate(end))
			printCommitSet(set)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().IntVar(&days, "days", 0, "Business days to shift (negative moves earlier)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

// newTimelineResizeCmd rewrites an item's window to explicit dates.
func newTimelineResizeCmd(app *App) *cobra.Command {
	var project, start, end string

	cmd := &cobra.Command{
		Use:   "resize ITEM_ID",
		Short: "Set an item's window to explicit dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			startDate, ok := domain.ParseDate(start)
			if !ok {
				return fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", start)
			}
			endDate, ok := domain.ParseDate(end)
			if !ok {
				return fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", end)
			}

			set, err := app.Timeline.CommitEdit(ctx, projectID, itemID, startDate, endDate)
			if err != nil {
				return err
			}

			fmt.Printf("Resized %s to %s .. %s\n", shortID(itemID), start, end)
			printCommitSet(set)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// findItemWindow returns the dependency-bound window of an item.
func findItemWindow(items []timeline.Item, itemID string) (time.Time, time.Time, bool) {
	for _, it := range items {
		if it.ID == itemID {
			return it.WindowStart(), it.WindowEnd(), true
		}
	}
	return time.Time{}, time.Time{}, false
}

func newTimelineOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Rearrange the display order",
	}

	cmd.AddCommand(
		newTimelineOrderMoveCmd(app, "up", "Move an item one row up", app.Timeline.MoveUp),
		newTimelineOrderMoveCmd(app, "down", "Move an item one row down", app.Timeline.MoveDown),
	)

	return cmd
}

func newTimelineOrderMoveCmd(app *App, direction, short string, move func(ctx context.Context, projectID, itemID string) error) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   direction + " ITEM_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := move(ctx, projectID, itemID); err != nil {
				return err
			}
			fmt.Printf("Moved %s %s\n", shortID(itemID), direction)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
