package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/teatest"
	"github.com/finestedm/procalc/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chartCol returns the terminal column of a day on the test chart:
// cursor prefix, label column, two-cell gap, then two cells per day
// counted from the chart start (the project order date).
func chartCol(dayIndex int) int {
	return ganttCursorWidth + 24 + 2 + dayIndex*2
}

func seedGanttProject(t *testing.T, app *App) (projectID, stageA, stageB string) {
	t.Helper()
	ctx := context.Background()

	p := &domain.Project{Name: "Warehouse A", OrderDate: date(t, "2024-06-01")}
	require.NoError(t, app.Projects.Create(ctx, p))

	a := &domain.InstallationStage{
		ProjectID: p.ID,
		Name:      "Racking",
		Seq:       1,
		StartDate: datePtr(t, "2024-06-03"),
		EndDate:   datePtr(t, "2024-06-05"),
	}
	require.NoError(t, app.Stages.Create(ctx, a))

	b := &domain.InstallationStage{
		ProjectID: p.ID,
		Name:      "Decking",
		Seq:       2,
		StartDate: datePtr(t, "2024-06-04"),
		EndDate:   datePtr(t, "2024-06-05"),
	}
	require.NoError(t, app.Stages.Create(ctx, b))

	return p.ID, a.ID, b.ID
}

func newGanttDriver(t *testing.T, app *App, projectID string) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newGanttModel(app, projectID, 24, 2))
	d.DrainInit()
	return d
}

func TestGanttView_RendersChart(t *testing.T) {
	app := newTestApp(t)
	projectID, _, _ := seedGanttProject(t, app)

	d := newGanttDriver(t, app, projectID)
	view := d.View()

	assert.Contains(t, view, "WAREHOUSE A")
	assert.Contains(t, view, "Racking")
	assert.Contains(t, view, "Decking")
	assert.Contains(t, view, "▸")
}

func TestGanttView_CursorMoves(t *testing.T) {
	app := newTestApp(t)
	projectID, _, _ := seedGanttProject(t, app)

	d := newGanttDriver(t, app, projectID)
	d.PressDown()

	lines := strings.Split(d.View(), "\n")
	var marked []int
	for i, line := range lines {
		if strings.Contains(line, "▸") {
			marked = append(marked, i)
		}
	}
	require.Len(t, marked, 1)
	assert.Contains(t, lines[marked[0]], "Decking")
}

func TestGanttView_DragMovesStage(t *testing.T) {
	app := newTestApp(t)
	projectID, stageA, _ := seedGanttProject(t, app)

	d := newGanttDriver(t, app, projectID)

	// Grab the middle of Racking's bar (2024-06-04, day 3 on the chart)
	// and drag it two days to the right.
	d.Drag(chartCol(3), ganttTopRows, chartCol(5), ganttTopRows)

	st, err := app.Stages.GetByID(context.Background(), stageA)
	require.NoError(t, err)
	require.NotNil(t, st.StartDate)
	require.NotNil(t, st.EndDate)
	assert.Equal(t, "2024-06-05", domain.FormatDate(*st.StartDate))
	assert.Equal(t, "2024-06-07", domain.FormatDate(*st.EndDate))
}

func TestGanttView_NudgeShiftsSelectedItem(t *testing.T) {
	app := newTestApp(t)
	projectID, stageA, _ := seedGanttProject(t, app)

	d := newGanttDriver(t, app, projectID)
	d.SendKey(tea.KeyMsg{Type: tea.KeyShiftRight})

	st, err := app.Stages.GetByID(context.Background(), stageA)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-04", domain.FormatDate(*st.StartDate))
	assert.Equal(t, "2024-06-06", domain.FormatDate(*st.EndDate))
}

func TestGanttView_ResizeRejectsInvertedWindow(t *testing.T) {
	app := newTestApp(t)
	projectID, stageA, _ := seedGanttProject(t, app)

	d := newGanttDriver(t, app, projectID)

	// Drag Racking's end handle (2024-06-05, day 4) left past its start.
	d.Drag(chartCol(4), ganttTopRows, chartCol(0), ganttTopRows)

	st, err := app.Stages.GetByID(context.Background(), stageA)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", domain.FormatDate(*st.StartDate))
	assert.Equal(t, "2024-06-05", domain.FormatDate(*st.EndDate))
}

func TestGanttView_ConnectCreatesDependencyAndPushesTarget(t *testing.T) {
	app := newTestApp(t)
	projectID, _, stageB := seedGanttProject(t, app)

	d := newGanttDriver(t, app, projectID)
	d.PressKey('c')
	d.PressDown()
	d.PressEnter()

	// Decking started before Racking's end, so the new edge pushes it.
	st, err := app.Stages.GetByID(context.Background(), stageB)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", domain.FormatDate(*st.StartDate))
	assert.Equal(t, "2024-06-06", domain.FormatDate(*st.EndDate))

	view, err := app.Timeline.Load(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, view.Dependencies, 1)
}

func TestGanttView_EscCancelsConnect(t *testing.T) {
	app := newTestApp(t)
	projectID, _, stageB := seedGanttProject(t, app)

	d := newGanttDriver(t, app, projectID)
	d.PressKey('c')
	d.PressEsc()
	d.PressDown()
	d.PressEnter()

	st, err := app.Stages.GetByID(context.Background(), stageB)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-04", domain.FormatDate(*st.StartDate))

	view, err := app.Timeline.Load(context.Background(), projectID)
	require.NoError(t, err)
	assert.Empty(t, view.Dependencies)
}

func TestGanttView_ReorderPersists(t *testing.T) {
	app := newTestApp(t)
	projectID, stageA, stageB := seedGanttProject(t, app)

	d := newGanttDriver(t, app, projectID)
	d.PressKey('J')

	view, err := app.Timeline.Load(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, stageB, view.Items[0].ID)
	assert.Equal(t, stageA, view.Items[1].ID)
}

func TestGanttView_RentalDragWithOnlySecondSlotConfigured(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	p := &domain.Project{Name: "Warehouse A", OrderDate: date(t, "2024-06-01")}
	require.NoError(t, app.Projects.Create(ctx, p))

	// Slot 0 is left unconfigured, so the stage's only rental row maps
	// to config slot 1.
	st := &domain.InstallationStage{
		ProjectID: p.ID,
		Name:      "Racking",
		Seq:       1,
		StartDate: datePtr(t, "2024-06-03"),
		EndDate:   datePtr(t, "2024-06-07"),
	}
	st.Rentals[1] = domain.RentalConfig{Resource: domain.RentalScissorLift, Days: 2}
	require.NoError(t, app.Stages.Create(ctx, st))

	d := newGanttDriver(t, app, p.ID)

	// The rental row sits under its stage row. Grab the block on
	// 2024-06-04 and drag it two days to the right.
	d.Drag(chartCol(3), ganttTopRows+1, chartCol(5), ganttTopRows+1)

	got, err := app.Stages.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rentals[1].OffsetDays)
	assert.Equal(t, 2, got.Rentals[1].Days)
	assert.Zero(t, got.Rentals[0].OffsetDays)
}

func TestCommitSummary_ToleratesShortIDs(t *testing.T) {
	set := timeline.CommitSet{
		Stages:    []timeline.StageDates{{ID: "st1"}},
		Suppliers: []timeline.SupplierDelivery{{ID: "s1"}},
	}

	out := commitSummary(set)
	assert.Contains(t, out, "stage st1")
	assert.Contains(t, out, "supplier s1")
}

func TestGanttView_QuitsOnQ(t *testing.T) {
	app := newTestApp(t)
	projectID, _, _ := seedGanttProject(t, app)

	d := newGanttDriver(t, app, projectID)
	d.PressKey('q')

	assert.True(t, d.Quitting)
}
