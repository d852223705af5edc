// Package timeline derives a project's chart items from its raw records
// and keeps their date windows consistent under dependency edges and
// interactive edits. It is pure: all persistence and rendering happens
// in the layers around it.
package timeline

import (
	"time"

	"github.com/finestedm/procalc/internal/domain"
)

// ItemKind discriminates the four timeline item variants.
type ItemKind string

const (
	KindSupplierDelivery  ItemKind = "supplier_delivery"
	KindTransportGroup    ItemKind = "transport_group"
	KindInstallationStage ItemKind = "installation_stage"
	KindCustomTask        ItemKind = "custom_task"
)

// RentalWindow is the absolute placement of one rental-equipment block
// inside its parent stage's window.
type RentalWindow struct {
	Resource domain.RentalResource
	Slot     int
	Start    time.Time
	End      time.Time
}

// Item is the normalized unit the engine schedules. Items are a view
// derived from the project records on every build; they are never
// persisted themselves.
type Item struct {
	ID   string
	Kind ItemKind
	Name string

	// Production is the working/manufacturing window. For stages and
	// custom tasks it is the visible bar itself.
	ProductionStart time.Time
	ProductionEnd   time.Time

	// Delivery is the transport/arrival window. For stages and custom
	// tasks it equals the production window.
	DeliveryStart time.Time
	DeliveryEnd   time.Time

	// DateEstimated is set when no explicit date was supplied and the
	// window was inferred from defaults.
	DateEstimated bool

	// ParentGroupID is set on supplier items folded under an expanded
	// transport group.
	ParentGroupID string

	// LinkedSupplierIDs is set on transport groups; date updates to the
	// group fan out to these suppliers.
	LinkedSupplierIDs []string

	Rentals []RentalWindow
}

// WindowStart returns the start of the bar a dependency edge binds to:
// the delivery window. The builder keeps delivery equal to production
// for stages and custom tasks, so this is uniform across kinds.
func (it Item) WindowStart() time.Time { return it.DeliveryStart }

// WindowEnd returns the end of the dependency-bound bar.
func (it Item) WindowEnd() time.Time { return it.DeliveryEnd }

// IsChild reports whether the item is folded under a transport group
// and therefore not a valid root-level dependency target.
func (it Item) IsChild() bool { return it.ParentGroupID != "" }
