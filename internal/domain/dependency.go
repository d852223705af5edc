package domain

import "time"

// Dependency is a finish-to-start edge between two timeline items:
// the item identified by ToID must not start before FromID's item ends.
type Dependency struct {
	ID        string
	ProjectID string
	FromID    string
	ToID      string
	Kind      DependencyKind

	CreatedAt time.Time
}
