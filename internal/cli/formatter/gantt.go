package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/finestedm/procalc/internal/calendar"
	"github.com/finestedm/procalc/internal/timeline"
)

// GanttOptions controls static chart rendering.
type GanttOptions struct {
	// NameWidth is the label column width in characters.
	NameWidth int
	// DayWidth is the number of characters per calendar day.
	DayWidth int
	// From and To widen the visible range beyond the items' own span,
	// e.g. to include the order date or the protocol date.
	From time.Time
	To   time.Time
}

func (o GanttOptions) withDefaults() GanttOptions {
	if o.NameWidth <= 0 {
		o.NameWidth = 24
	}
	if o.DayWidth <= 0 {
		o.DayWidth = 2
	}
	return o
}

// RenderGantt renders the item list as a fixed-width chart: an ISO week
// axis on top, one row per item, one indented row per rental window.
// Production windows render hatched, delivery and work windows solid.
func RenderGantt(items []timeline.Item, opts GanttOptions) string {
	opts = opts.withDefaults()
	if len(items) == 0 {
		return Dim("(empty timeline)")
	}

	start, end := chartRange(items, opts)
	days := calendar.DiffCalendarDays(start, end) + 1

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", opts.NameWidth+2))
	b.WriteString(weekAxis(start, days, opts.DayWidth))
	b.WriteString("\n")

	for _, it := range items {
		b.WriteString(itemRow(it, start, days, opts))
		for _, r := range it.Rentals {
			b.WriteString(rentalRow(r, start, days, opts))
		}
	}
	return b.String()
}

func chartRange(items []timeline.Item, opts GanttOptions) (time.Time, time.Time) {
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
	if !opts.From.IsZero() && opts.From.Before(start) {
		start = opts.From
	}
	if !opts.To.IsZero() && opts.To.After(end) {
		end = opts.To
	}
	return start, end
}

// weekAxis labels each Monday with its ISO week number.
func weekAxis(start time.Time, days, dayWidth int) string {
	cells := make([]string, days)
	for i := range cells {
		cells[i] = strings.Repeat(" ", dayWidth)
	}
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		if d.Weekday() != time.Monday {
			continue
		}
		label := fmt.Sprintf("W%d", calendar.ISOWeekNumber(d))
		// A label may spill over following day cells.
		for j, r := range label {
			cell := (i*dayWidth + j) / dayWidth
			offset := (i*dayWidth + j) % dayWidth
			if cell >= days {
				break
			}
			cur := []rune(cells[cell])
			cur[offset] = r
			cells[cell] = string(cur)
		}
	}
	return StyleDim.Render(strings.Join(cells, ""))
}

func itemRow(it timeline.Item, start time.Time, days int, opts GanttOptions) string {
	label := it.Name
	if it.IsChild() {
		label = "· " + label
	}
	if it.DateEstimated {
		label += " ~"
	}

	style := kindStyle(it.Kind)
	var bar strings.Builder
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		switch {
		case within(d, it.DeliveryStart, it.DeliveryEnd):
			bar.WriteString(style.Render(strings.Repeat("█", opts.DayWidth)))
		case within(d, it.ProductionStart, it.ProductionEnd):
			bar.WriteString(style.Render(strings.Repeat("░", opts.DayWidth)))
		case !calendar.IsBusinessDay(d):
			bar.WriteString(StyleDim.Render(strings.Repeat("·", opts.DayWidth)))
		default:
			bar.WriteString(strings.Repeat(" ", opts.DayWidth))
		}
	}
	return fmt.Sprintf("%s  %s\n", padLabel(label, opts.NameWidth), bar.String())
}

func rentalRow(r timeline.RentalWindow, start time.Time, days int, opts GanttOptions) string {
	label := "└ " + string(r.Resource)
	var bar strings.Builder
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		if within(d, r.Start, r.End) {
			bar.WriteString(StyleAqua.Render(strings.Repeat("▒", opts.DayWidth)))
		} else {
			bar.WriteString(strings.Repeat(" ", opts.DayWidth))
		}
	}
	return fmt.Sprintf("%s  %s\n", padLabel(Dim(label), opts.NameWidth), bar.String())
}

// within reports whether d falls in the inclusive [from, to] day range.
func within(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func padLabel(label string, width int) string {
	w := lipgloss.Width(label)
	if w > width {
		return truncateStyled(label, width)
	}
	return label + strings.Repeat(" ", width-w)
}

// truncateStyled cuts a possibly styled label down to width visible
// characters. Styled labels are short here, so a rune walk suffices.
func truncateStyled(label string, width int) string {
	if lipgloss.Width(label) <= width {
		return label
	}
	runes := []rune(label)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
