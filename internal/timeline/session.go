package timeline

import (
	"math"
	"time"

	"github.com/finestedm/procalc/internal/calendar"
	"github.com/finestedm/procalc/internal/domain"
)

// DragKind identifies which handle a pointer-down grabbed.
type DragKind string

const (
	DragDeliveryMove DragKind = "delivery_move"
	DragBarMove      DragKind = "bar_move"
	DragBarResize    DragKind = "bar_resize"
	DragRentalMove   DragKind = "rental_move"
)

// ResizeEdge selects which edge a resize drag moves.
type ResizeEdge int

const (
	EdgeNone ResizeEdge = iota
	EdgeStart
	EdgeEnd
)

// Scale converts horizontal pixel deltas to calendar-day deltas. The
// time axis is linear in calendar days, never business days.
type Scale struct {
	PixelsPerDay float64
}

// Days rounds a pixel delta to whole calendar days.
func (s Scale) Days(pixels float64) int {
	if s.PixelsPerDay <= 0 {
		return 0
	}
	return int(math.Round(pixels / s.PixelsPerDay))
}

type sessionMode int

const (
	modeIdle sessionMode = iota
	modeDragging
	modeConnecting
)

type dragState struct {
	kind        DragKind
	edge        ResizeEdge
	itemID      string
	rentalSlot  int
	originStart time.Time
	originEnd   time.Time
	dayDelta    int
}

// Proposal is the committed outcome of a move or resize drag, handed to
// the Propagator as a single-item seed.
type Proposal struct {
	ItemID string
	Start  time.Time
	End    time.Time
}

// RentalShift is the committed outcome of a rental drag: the rental's
// new relative offset from its parent stage's start, in business days.
type RentalShift struct {
	StageID    string
	Slot       int
	OffsetDays int
}

// Session is the per-gesture edit state machine: Idle until a
// pointer-down starts a drag or a connect, then back to Idle on commit
// or cancel. Exactly one session is live at a time by construction.
// The session tracks dates and deltas only; rendering the visual offset
// is the host's concern.
type Session struct {
	scale         Scale
	mode          sessionMode
	drag          dragState
	connectSource string
}

// NewSession creates an idle session for the given zoom level.
func NewSession(scale Scale) *Session {
	return &Session{scale: scale}
}

// Idle reports whether no gesture is in progress.
func (s *Session) Idle() bool { return s.mode == modeIdle }

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool { return s.mode == modeDragging }

// Connecting returns the pending connect source id, if any.
func (s *Session) Connecting() (string, bool) {
	if s.mode != modeConnecting {
		return "", false
	}
	return s.connectSource, true
}

// DragTarget returns the id of the item being dragged.
func (s *Session) DragTarget() (string, bool) {
	if s.mode != modeDragging {
		return "", false
	}
	return s.drag.itemID, true
}

// StartDrag opens a move or resize gesture on an item, recording its
// current window as the drag origin. No date mutation happens until
// commit. Returns false when a gesture is already open.
func (s *Session) StartDrag(kind DragKind, edge ResizeEdge, itemID string, originStart, originEnd time.Time) bool {
	if s.mode != modeIdle {
		return false
	}
	s.mode = modeDragging
	s.drag = dragState{
		kind:        kind,
		edge:        edge,
		itemID:      itemID,
		originStart: originStart,
		originEnd:   originEnd,
	}
	return true
}

// StartRentalDrag opens a drag on one rental block of a stage.
func (s *Session) StartRentalDrag(stageID string, slot int, originStart time.Time) bool {
	if s.mode != modeIdle {
		return false
	}
	s.mode = modeDragging
	s.drag = dragState{
		kind:        DragRentalMove,
		itemID:      stageID,
		rentalSlot:  slot,
		originStart: originStart,
	}
	return true
}

// StartConnect opens an edge-creation gesture from an item's trailing
// edge. Returns false when a gesture is already open.
func (s *Session) StartConnect(sourceID string) bool {
	if s.mode != modeIdle {
		return false
	}
	s.mode = modeConnecting
	s.connectSource = sourceID
	return true
}

// Move updates the live day delta from the accumulated horizontal pixel
// delta and returns it for the host's visual offset. Nothing commits.
func (s *Session) Move(pixelDelta float64) int {
	if s.mode != modeDragging {
		return 0
	}
	s.drag.dayDelta = s.scale.Days(pixelDelta)
	return s.drag.dayDelta
}

// DayDelta returns the current uncommitted day delta.
func (s *Session) DayDelta() int {
	if s.mode != modeDragging {
		return 0
	}
	return s.drag.dayDelta
}

// CommitDrag closes a move or resize gesture and returns the proposed
// window. Returns ok=false with the session back at Idle when there is
// nothing to commit: zero delta, a rental drag (see CommitRentalDrag),
// or a resize that would invert the window.
func (s *Session) CommitDrag() (Proposal, bool) {
	if s.mode != modeDragging || s.drag.kind == DragRentalMove {
		s.reset()
		return Proposal{}, false
	}
	d := s.drag
	s.reset()
	if d.dayDelta == 0 {
		return Proposal{}, false
	}

	start, end := d.originStart, d.originEnd
	switch d.kind {
	case DragDeliveryMove, DragBarMove:
		start = start.AddDate(0, 0, d.dayDelta)
		end = end.AddDate(0, 0, d.dayDelta)
	case DragBarResize:
		if d.edge == EdgeStart {
			start = start.AddDate(0, 0, d.dayDelta)
		} else {
			end = end.AddDate(0, 0, d.dayDelta)
		}
		if end.Before(start) {
			return Proposal{}, false
		}
	}

	return Proposal{ItemID: d.itemID, Start: start, End: end}, true
}

// CommitRentalDrag closes a rental gesture. The new absolute start is
// re-expressed as a business-day offset from the parent stage's current
// start, clamped to zero; the caller writes it straight to the stage's
// rental config, bypassing the Propagator.
func (s *Session) CommitRentalDrag(stageStart time.Time) (RentalShift, bool) {
	if s.mode != modeDragging || s.drag.kind != DragRentalMove {
		s.reset()
		return RentalShift{}, false
	}
	d := s.drag
	s.reset()
	if d.dayDelta == 0 {
		return RentalShift{}, false
	}

	newStart := d.originStart.AddDate(0, 0, d.dayDelta)
	offset := 0
	if newStart.After(stageStart) {
		offset = calendar.CountBusinessDays(stageStart, newStart)
	}
	return RentalShift{StageID: d.itemID, Slot: d.rentalSlot, OffsetDays: offset}, true
}

// CommitConnect closes a connect gesture over a drop target and returns
// the source id. Dropping on empty space (empty target), on the source
// itself, or with no connect open yields ok=false.
func (s *Session) CommitConnect(targetID string) (string, bool) {
	if s.mode != modeConnecting {
		s.reset()
		return "", false
	}
	source := s.connectSource
	s.reset()
	if targetID == "" || targetID == source {
		return "", false
	}
	return source, true
}

// Cancel abandons any open gesture without committing.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	s.mode = modeIdle
	s.drag = dragState{}
	s.connectSource = ""
}

// CanConnect validates a proposed dependency edge against the current
// snapshot: the edge must join two distinct known items, the target
// must not be a folded transport-group child, and the edge must not
// already exist.
func CanConnect(items []Item, deps []domain.Dependency, sourceID, targetID string) bool {
	if sourceID == targetID {
		return false
	}
	var source, target *Item
	for i := range items {
		switch items[i].ID {
		case sourceID:
			source = &items[i]
		case targetID:
			target = &items[i]
		}
	}
	if source == nil || target == nil || target.IsChild() {
		return false
	}
	for _, d := range deps {
		if d.FromID == sourceID && d.ToID == targetID {
			return false
		}
	}
	return true
}
