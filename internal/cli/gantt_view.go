package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/finestedm/procalc/internal/cli/formatter"
	"github.com/finestedm/procalc/internal/service"
	"github.com/finestedm/procalc/internal/timeline"
)

// Chart geometry: two header lines, one blank line, then the week axis.
// Rows start on the line after the axis. Every line carries a two-cell
// cursor prefix.
const (
	ganttTopRows     = 4
	ganttCursorWidth = 2
)

// timelineLoadedMsg signals that chart data has been (re)loaded.
type timelineLoadedMsg struct {
	view *service.TimelineView
	err  error
}

// editCommittedMsg signals that a drag, link, or reorder was persisted.
type editCommittedMsg struct {
	set timeline.CommitSet
	err error
}

// ganttRow maps one visible chart row back to its record.
type ganttRow struct {
	itemID string
	rental bool
	slot   int
}

// ganttModel is the interactive chart: arrow keys move the cursor, the
// mouse drags bars, and a pending connect turns the next enter into a
// dependency edge.
type ganttModel struct {
	app       *App
	projectID string

	view    *service.TimelineView
	session *timeline.Session
	rows    []ganttRow
	cursor  int

	nameWidth int
	dayWidth  int

	dragStartX int
	loading    bool
	quitting   bool
	status     string
	err        error
}

func newGanttModel(app *App, projectID string, nameWidth, dayWidth int) ganttModel {
	return ganttModel{
		app:       app,
		projectID: projectID,
		session:   timeline.NewSession(timeline.Scale{PixelsPerDay: float64(dayWidth)}),
		nameWidth: nameWidth,
		dayWidth:  dayWidth,
		loading:   true,
	}
}

func (m ganttModel) Init() tea.Cmd {
	return m.loadTimeline()
}

func (m ganttModel) loadTimeline() tea.Cmd {
	app, projectID := m.app, m.projectID
	return func() tea.Msg {
		view, err := app.Timeline.Load(context.Background(), projectID)
		return timelineLoadedMsg{view: view, err: err}
	}
}

func (m ganttModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timelineLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = msg.view
		m.rows = buildRows(msg.view.Items)
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case editCommittedMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(msg.err.Error())
			return m, nil
		}
		m.status = commitSummary(msg.set)
		return m, m.loadTimeline()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// ganttKeys is the keymap of the interactive chart.
var ganttKeys = struct {
	Quit, Reload, Up, Down, OrderUp, OrderDown     key.Binding
	NudgeLeft, NudgeRight, Connect, Accept, Cancel key.Binding
}{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row down")),
	OrderUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "reorder up")),
	OrderDown:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "reorder down")),
	NudgeLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "nudge earlier")),
	NudgeRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "nudge later")),
	Connect:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
	Accept:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "link target")),
	Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

func (m ganttModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ganttKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, ganttKeys.Reload):
		m.status = ""
		return m, m.loadTimeline()

	case key.Matches(msg, ganttKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, ganttKeys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, ganttKeys.OrderUp):
		if row, ok := m.cursorRow(); ok && !row.rental {
			return m, m.reorder(m.app.Timeline.MoveUp, row.itemID)
		}
	case key.Matches(msg, ganttKeys.OrderDown):
		if row, ok := m.cursorRow(); ok && !row.rental {
			return m, m.reorder(m.app.Timeline.MoveDown, row.itemID)
		}

	case key.Matches(msg, ganttKeys.NudgeLeft):
		return m, m.nudge(-1)
	case key.Matches(msg, ganttKeys.NudgeRight):
		return m, m.nudge(1)

	case key.Matches(msg, ganttKeys.Connect):
		if row, ok := m.cursorRow(); ok && !row.rental {
			if m.session.StartConnect(row.itemID) {
				m.status = formatter.Dim("connecting from " + itemName(m.view, row.itemID) + ", enter on target to link")
			}
		}

	case key.Matches(msg, ganttKeys.Accept):
		row, ok := m.cursorRow()
		if !ok {
			return m, nil
		}
		if source, ok := m.session.CommitConnect(row.itemID); ok {
			return m, m.link(source, row.itemID)
		}

	case key.Matches(msg, ganttKeys.Cancel):
		m.session.Cancel()
		m.status = ""
	}
	return m, nil
}

func (m ganttModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.startDrag(msg.X, msg.Y), nil

	case tea.MouseActionMotion:
		if m.session.Dragging() {
			m.session.Move(float64(msg.X - m.dragStartX))
		}
		return m, nil

	case tea.MouseActionRelease:
		return m.finishDrag()
	}
	return m, nil
}

// startDrag maps a pointer-down to a chart row and opens a gesture on
// it. Clicks on a window's first or last cell open a resize, clicks
// inside a supplier's solid block move the delivery, everything else
// moves the whole bar.
func (m ganttModel) startDrag(x, y int) ganttModel {
	rowIdx := y - ganttTopRows
	if rowIdx < 0 || rowIdx >= len(m.rows) || m.view == nil {
		return m
	}
	m.cursor = rowIdx
	row := m.rows[rowIdx]
	it, ok := findItem(m.view.Items, row.itemID)
	if !ok {
		return m
	}

	day, ok := m.dayAt(x)
	if !ok {
		return m
	}

	if row.rental {
		r, _, found := findRental(it, row.slot)
		if !found {
			return m
		}
		if within(day, r.Start, r.End) && m.session.StartRentalDrag(it.ID, row.slot, r.Start) {
			m.dragStartX = x
		}
		return m
	}

	switch {
	case day.Equal(it.WindowStart()) && !it.WindowStart().Equal(it.WindowEnd()):
		ok = m.session.StartDrag(timeline.DragBarResize, timeline.EdgeStart, it.ID, it.WindowStart(), it.WindowEnd())
	case day.Equal(it.WindowEnd()) && !it.WindowStart().Equal(it.WindowEnd()):
		ok = m.session.StartDrag(timeline.DragBarResize, timeline.EdgeEnd, it.ID, it.WindowStart(), it.WindowEnd())
	case within(day, it.DeliveryStart, it.DeliveryEnd):
		ok = m.session.StartDrag(timeline.DragDeliveryMove, timeline.EdgeNone, it.ID, it.WindowStart(), it.WindowEnd())
	case within(day, it.ProductionStart, it.ProductionEnd):
		ok = m.session.StartDrag(timeline.DragBarMove, timeline.EdgeNone, it.ID, it.WindowStart(), it.WindowEnd())
	default:
		ok = false
	}
	if ok {
		m.dragStartX = x
	}
	return m
}

func (m ganttModel) finishDrag() (tea.Model, tea.Cmd) {
	dragID, dragging := m.session.DragTarget()
	if !dragging {
		return m, nil
	}

	// Rental drags bypass the propagator entirely.
	if row, ok := m.rowForDrag(dragID); ok && row.rental {
		it, _ := findItem(m.view.Items, dragID)
		shift, ok := m.session.CommitRentalDrag(it.ProductionStart)
		if !ok {
			return m, nil
		}
		app := m.app
		return m, func() tea.Msg {
			err := app.Timeline.SetRentalOffset(context.Background(), shift.StageID, shift.Slot, shift.OffsetDays)
			return editCommittedMsg{err: err}
		}
	}

	proposal, ok := m.session.CommitDrag()
	if !ok {
		return m, nil
	}
	app, projectID := m.app, m.projectID
	return m, func() tea.Msg {
		set, err := app.Timeline.CommitEdit(context.Background(), projectID, proposal.ItemID, proposal.Start, proposal.End)
		return editCommittedMsg{set: set, err: err}
	}
}

// rowForDrag finds the row a drag gesture belongs to. A rental drag and
// its parent stage share an item id, so prefer the rental row when the
// session opened one.
func (m ganttModel) rowForDrag(itemID string) (ganttRow, bool) {
	if m.cursor < len(m.rows) && m.rows[m.cursor].itemID == itemID {
		return m.rows[m.cursor], true
	}
	for _, row := range m.rows {
		if row.itemID == itemID {
			return row, true
		}
	}
	return ganttRow{}, false
}

// nudge shifts the selected item's whole window by calendar days, the
// keyboard equivalent of a bar drag.
func (m ganttModel) nudge(days int) tea.Cmd {
	row, ok := m.cursorRow()
	if !ok || row.rental || m.view == nil {
		return nil
	}
	it, ok := findItem(m.view.Items, row.itemID)
	if !ok {
		return nil
	}
	start := it.WindowStart().AddDate(0, 0, days)
	end := it.WindowEnd().AddDate(0, 0, days)

	app, projectID := m.app, m.projectID
	return func() tea.Msg {
		set, err := app.Timeline.CommitEdit(context.Background(), projectID, it.ID, start, end)
		return editCommittedMsg{set: set, err: err}
	}
}

func (m ganttModel) reorder(move func(ctx context.Context, projectID, itemID string) error, itemID string) tea.Cmd {
	projectID := m.projectID
	return func() tea.Msg {
		err := move(context.Background(), projectID, itemID)
		return editCommittedMsg{err: err}
	}
}

func (m ganttModel) link(fromID, toID string) tea.Cmd {
	app, projectID := m.app, m.projectID
	return func() tea.Msg {
		set, err := app.Timeline.Link(context.Background(), projectID, fromID, toID)
		return editCommittedMsg{set: set, err: err}
	}
}

func (m ganttModel) cursorRow() (ganttRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ganttRow{}, false
	}
	return m.rows[m.cursor], true
}

// dayAt converts a terminal column to the calendar day it covers.
func (m ganttModel) dayAt(x int) (time.Time, bool) {
	if m.view == nil || len(m.view.Items) == 0 {
		return time.Time{}, false
	}
	start, end := chartBounds(m.view)
	col := x - ganttCursorWidth - m.nameWidth - 2
	if col < 0 {
		return time.Time{}, false
	}
	day := start.AddDate(0, 0, col/m.dayWidth)
	if day.After(end) {
		return time.Time{}, false
	}
	return day, true
}

func (m ganttModel) View() string {
	if m.quitting {
		return ""
	}
	if m.loading {
		return "\n  " + formatter.Dim("Loading timeline...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}

	var b strings.Builder
	b.WriteString(formatter.Header(m.view.Project.Name))
	b.WriteString("\n\n")

	chart := formatter.RenderGantt(m.displayItems(), m.ganttOpts())
	for i, line := range strings.Split(strings.TrimRight(chart, "\n"), "\n") {
		prefix := "  "
		if i > 0 && i-1 == m.cursor {
			prefix = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(prefix + line + "\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("  " + m.status + "\n")
	}
	b.WriteString("  " + formatter.Dim("drag bars with the mouse · shift+arrows nudge · c connect · K/J reorder · r reload · q quit") + "\n")
	return b.String()
}

func (m ganttModel) ganttOpts() formatter.GanttOptions {
	opts := formatter.GanttOptions{
		NameWidth: m.nameWidth,
		DayWidth:  m.dayWidth,
		From:      m.view.Project.OrderDate,
	}
	if m.view.Project.ProtocolDate != nil {
		opts.To = *m.view.Project.ProtocolDate
	}
	return opts
}

// displayItems applies the live, uncommitted drag delta so the dragged
// bar follows the pointer.
func (m ganttModel) displayItems() []timeline.Item {
	delta := m.session.DayDelta()
	dragID, dragging := m.session.DragTarget()
	if !dragging || delta == 0 {
		return m.view.Items
	}

	items := make([]timeline.Item, len(m.view.Items))
	copy(items, m.view.Items)
	row, ok := m.rowForDrag(dragID)
	if !ok {
		return items
	}
	for i := range items {
		if items[i].ID != dragID {
			continue
		}
		if row.rental {
			if _, idx, found := findRental(items[i], row.slot); found {
				rentals := make([]timeline.RentalWindow, len(items[i].Rentals))
				copy(rentals, items[i].Rentals)
				rentals[idx].Start = rentals[idx].Start.AddDate(0, 0, delta)
				rentals[idx].End = rentals[idx].End.AddDate(0, 0, delta)
				items[i].Rentals = rentals
			}
		} else {
			items[i].ProductionStart = items[i].ProductionStart.AddDate(0, 0, delta)
			items[i].ProductionEnd = items[i].ProductionEnd.AddDate(0, 0, delta)
			items[i].DeliveryStart = items[i].DeliveryStart.AddDate(0, 0, delta)
			items[i].DeliveryEnd = items[i].DeliveryEnd.AddDate(0, 0, delta)
		}
	}
	return items
}

func buildRows(items []timeline.Item) []ganttRow {
	var rows []ganttRow
	for _, it := range items {
		rows = append(rows, ganttRow{itemID: it.ID})
		for _, r := range it.Rentals {
			rows = append(rows, ganttRow{itemID: it.ID, rental: true, slot: r.Slot})
		}
	}
	return rows
}

// findRental looks a rental up by its config slot. Items carry only
// configured rentals, so a rental's slot and its slice index can differ.
func findRental(it timeline.Item, slot int) (timeline.RentalWindow, int, bool) {
	for i, r := range it.Rentals {
		if r.Slot == slot {
			return r, i, true
		}
	}
	return timeline.RentalWindow{}, 0, false
}

func findItem(items []timeline.Item, id string) (timeline.Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return timeline.Item{}, false
}

func itemName(view *service.TimelineView, id string) string {
	if view == nil {
		return id
	}
	if it, ok := findItem(view.Items, id); ok {
		return it.Name
	}
	return id
}

func within(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

// chartBounds mirrors the range the static renderer draws, including
// the order-date and protocol-date widening.
func chartBounds(view *service.TimelineView) (time.Time, time.Time) {
	items := view.Items
	start, end := items[0].ProductionStart, items[0].DeliveryEnd
	for _, it := range items {
		if it.ProductionStart.Before(start) {
			start = it.ProductionStart
		}
		if it.DeliveryEnd.After(end) {
			end = it.DeliveryEnd
		}
		for _, r := range it.Rentals {
			if r.End.After(end) {
				end = r.End
			}
		}
	}
	if view.Project.OrderDate.Before(start) {
		start = view.Project.OrderDate
	}
	if view.Project.ProtocolDate != nil && view.Project.ProtocolDate.After(end) {
		end = *view.Project.ProtocolDate
	}
	return start, end
}

func commitSummary(set timeline.CommitSet) string {
	if set.Empty() {
		return formatter.Dim("saved")
	}
	moved := len(set.Stages) + len(set.Tasks) + len(set.Suppliers)
	parts := make([]string, 0, moved)
	for _, sd := range set.Stages {
		parts = append(parts, fmt.Sprintf("stage %s", shortID(sd.ID)))
	}
	for _, td := range set.Tasks {
		parts = append(parts, fmt.Sprintf("task %s", shortID(td.ID)))
	}
	for _, sd := range set.Suppliers {
		parts = append(parts, fmt.Sprintf("supplier %s", shortID(sd.ID)))
	}
	return formatter.StyleGreen.Render(fmt.Sprintf("saved: %s", strings.Join(parts, ", ")))
}

// shortID is the unstyled display prefix of an id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
