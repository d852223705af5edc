package timeline

import (
	"sort"
	"time"
)

// StageDates rewrites an installation stage's or custom task's window.
type StageDates struct {
	ID    string
	Start time.Time
	End   time.Time
}

// SupplierDelivery rewrites a supplier's manual delivery date. The
// delivery end is re-derived on the next build.
type SupplierDelivery struct {
	ID           string
	DeliveryDate time.Time
}

// CommitSet is the batched, collaborator-facing form of one propagation
// pass, ready to be written in a single transaction.
type CommitSet struct {
	Stages    []StageDates
	Tasks     []StageDates
	Suppliers []SupplierDelivery
}

// Empty reports whether the pass produced no writes.
func (c CommitSet) Empty() bool {
	return len(c.Stages) == 0 && len(c.Tasks) == 0 && len(c.Suppliers) == 0
}

// TranslateUpdates converts per-item window rewrites into per-record
// writes: stages and tasks get their own dates, suppliers get their
// manual delivery date set to the new start, and transport groups fan
// the new start out to every linked supplier. Ids that no longer
// resolve are dropped. Output order is deterministic.
func TranslateUpdates(items []Item, updates map[string]Update) CommitSet {
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var set CommitSet
	supplierDates := make(map[string]time.Time)

	for id, u := range updates {
		it, ok := byID[id]
		if !ok {
			continue
		}
		switch it.Kind {
		case KindInstallationStage:
			set.Stages = append(set.Stages, StageDates{ID: id, Start: u.Start, End: u.End})
		case KindCustomTask:
			set.Tasks = append(set.Tasks, StageDates{ID: id, Start: u.Start, End: u.End})
		case KindSupplierDelivery:
			supplierDates[id] = u.Start
		case KindTransportGroup:
			for _, sid := range it.LinkedSupplierIDs {
				supplierDates[sid] = u.Start
			}
		}
	}

	for id, d := range supplierDates {
		set.Suppliers = append(set.Suppliers, SupplierDelivery{ID: id, DeliveryDate: d})
	}

	sort.Slice(set.Stages, func(i, j int) bool { return set.Stages[i].ID < set.Stages[j].ID })
	sort.Slice(set.Tasks, func(i, j int) bool { return set.Tasks[i].ID < set.Tasks[j].ID })
	sort.Slice(set.Suppliers, func(i, j int) bool { return set.Suppliers[i].ID < set.Suppliers[j].ID })
	return set
}
