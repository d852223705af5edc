package domain

import "time"

// TransportGroup folds two or more supplier deliveries into one
// combined transport. Groups linking fewer than two suppliers are
// ignored by the timeline builder.
type TransportGroup struct {
	ID                string
	ProjectID         string
	Name              string
	LinkedSupplierIDs []string

	// Expanded controls whether the group's children are also emitted
	// as indented child rows on the chart.
	Expanded bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
