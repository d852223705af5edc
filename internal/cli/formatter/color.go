package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/timeline"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On hold")
	case domain.ProjectDone:
		return StyleDim.Render("✔ Done")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// KindBadge returns a colored label for a timeline item kind.
func KindBadge(kind timeline.ItemKind) string {
	switch kind {
	case timeline.KindSupplierDelivery:
		return StyleBlue.Render("DELIVERY")
	case timeline.KindTransportGroup:
		return StylePurple.Render("TRANSPORT")
	case timeline.KindInstallationStage:
		return StyleGreen.Render("STAGE")
	case timeline.KindCustomTask:
		return StyleYellow.Render("TASK")
	default:
		return StyleDim.Render(strings.ToUpper(string(kind)))
	}
}

// kindStyle is the bar color used on the chart for each item kind.
func kindStyle(kind timeline.ItemKind) lipgloss.Style {
	switch kind {
	case timeline.KindSupplierDelivery:
		return StyleBlue
	case timeline.KindTransportGroup:
		return StylePurple
	case timeline.KindInstallationStage:
		return StyleGreen
	case timeline.KindCustomTask:
		return StyleYellow
	default:
		return StyleDim
	}
}

// EstimatedMark returns the marker appended to inferred dates.
func EstimatedMark(estimated bool) string {
	if !estimated {
		return ""
	}
	return StyleYellow.Render(" ~")
}
