package cli

import (
	"github.com/finestedm/procalc/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects   service.ProjectService
	Suppliers  service.SupplierService
	Stages     service.StageService
	Tasks      service.TaskService
	Transports service.TransportService
	Timeline   service.TimelineService
	Import     service.ImportService

	// IsInteractive reports whether stdin is a terminal; the chart TUI
	// and entry forms refuse to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "procalc" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "procalc",
		Short: "Installation project timeline planner",
	}

	root.AddCommand(
		newProjectCmd(app),
		newSupplierCmd(app),
		newStageCmd(app),
		newTaskCmd(app),
		newTransportCmd(app),
		newLinkCmd(app),
		newTimelineCmd(app),
		newGanttCmd(app),
	)

	return root
}
