package timeline

import (
	"sort"
	"time"

	"github.com/finestedm/procalc/internal/calendar"
	"github.com/finestedm/procalc/internal/domain"
)

// Update is a proposed window rewrite for one item.
type Update struct {
	Start time.Time
	End   time.Time
}

// Propagator enforces finish-to-start edges over an immutable snapshot
// of the item list and dependency set. One instance serves one pass;
// the host must not mutate the records while a pass runs.
type Propagator struct {
	items      map[string]Item
	successors map[string][]domain.Dependency
}

// NewPropagator indexes the snapshot. Edges whose source or target does
// not resolve to an item are carried but skipped during the pass.
func NewPropagator(items []Item, deps []domain.Dependency) *Propagator {
	p := &Propagator{
		items:      make(map[string]Item, len(items)),
		successors: make(map[string][]domain.Dependency),
	}
	for _, it := range items {
		p.items[it.ID] = it
	}
	for _, d := range deps {
		p.successors[d.FromID] = append(p.successors[d.FromID], d)
	}
	return p
}

// Run propagates the seed date changes breadth-first until the graph is
// locally consistent and returns every resulting window rewrite,
// including the seeds themselves. Targets only ever move forward: a
// source moving earlier never pulls a satisfied successor back.
func (p *Propagator) Run(seed map[string]Update) map[string]Update {
	pending := make(map[string]Update, len(seed))
	queue := make([]string, 0, len(seed))
	for id, u := range seed {
		pending[id] = u
		queue = append(queue, id)
	}
	sort.Strings(queue)
	return p.run(pending, queue)
}

// RunFrom enforces a single newly created edge with no seed change: the
// pass starts at the edge's source and produces updates only when the
// constraint is currently violated.
func (p *Propagator) RunFrom(sourceID string) map[string]Update {
	return p.run(make(map[string]Update), []string{sourceID})
}

// run is the propagation loop. Instead of a visited set with an
// unmark-to-revisit exception, each target carries its best known
// shifted start; a successor is re-enqueued only when a strictly later
// start is proposed, so the pass stops as soon as no proposal improves.
// A hard iteration cap bounds cyclic graphs.
func (p *Propagator) run(pending map[string]Update, queue []string) map[string]Update {
	bestStart := make(map[string]time.Time)
	limit := (len(p.items) + 1) * (len(p.successors) + len(queue) + 1)

	for len(queue) > 0 && limit > 0 {
		limit--
		id := queue[0]
		queue = queue[1:]

		srcEnd, ok := p.effectiveEnd(id, pending)
		if !ok {
			continue
		}

		for _, d := range p.successors[id] {
			tgt, ok := p.items[d.ToID]
			if !ok {
				continue
			}
			tgtStart := tgt.WindowStart()
			if u, ok := pending[d.ToID]; ok {
				tgtStart = u.Start
			}
			if !tgtStart.Before(srcEnd) {
				continue
			}

			newStart := srcEnd
			if prev, seen := bestStart[d.ToID]; seen && !newStart.After(prev) {
				continue
			}

			// Same-duration shift, measured on the target's original
			// window so chained shifts never stretch or shrink it.
			days := calendar.DiffCalendarDays(tgt.WindowStart(), tgt.WindowEnd())
			pending[d.ToID] = Update{Start: newStart, End: newStart.AddDate(0, 0, days)}
			bestStart[d.ToID] = newStart
			queue = append(queue, d.ToID)
		}
	}

	return pending
}

// effectiveEnd resolves an item's current end: the pending update when
// one exists, else the live computed window. Unknown ids are skipped.
func (p *Propagator) effectiveEnd(id string, pending map[string]Update) (time.Time, bool) {
	if u, ok := pending[id]; ok {
		return u.End, true
	}
	it, ok := p.items[id]
	if !ok {
		return time.Time{}, false
	}
	return it.WindowEnd(), true
}
