package timeline

// Ordering maintains an optional explicit display order for items. It
// is pure list bookkeeping: permuting the chart never touches the date
// model.
type Ordering struct {
	ids []string
}

// NewOrdering creates an overlay from a previously saved id order.
func NewOrdering(ids []string) *Ordering {
	o := &Ordering{ids: make([]string, len(ids))}
	copy(o.ids, ids)
	return o
}

// IDs returns the current explicit order for persistence.
func (o *Ordering) IDs() []string {
	out := make([]string, len(o.ids))
	copy(out, o.ids)
	return out
}

// Sync reconciles the overlay with a freshly built item list: ids that
// no longer resolve are pruned and new items are appended in build
// order. Child items follow their group and are not tracked.
func (o *Ordering) Sync(items []Item) {
	known := make(map[string]bool, len(items))
	for _, it := range items {
		if !it.IsChild() {
			known[it.ID] = true
		}
	}
	kept := o.ids[:0]
	for _, id := range o.ids {
		if known[id] {
			kept = append(kept, id)
			delete(known, id)
		}
	}
	o.ids = kept
	for _, it := range items {
		if !it.IsChild() && known[it.ID] {
			o.ids = append(o.ids, it.ID)
		}
	}
}

// MoveUp swaps the item one position earlier. Returns false when the
// id is untracked or already first.
func (o *Ordering) MoveUp(id string) bool {
	for i, cur := range o.ids {
		if cur == id {
			if i == 0 {
				return false
			}
			o.ids[i-1], o.ids[i] = o.ids[i], o.ids[i-1]
			return true
		}
	}
	return false
}

// MoveDown swaps the item one position later. Returns false when the
// id is untracked or already last.
func (o *Ordering) MoveDown(id string) bool {
	for i, cur := range o.ids {
		if cur == id {
			if i == len(o.ids)-1 {
				return false
			}
			o.ids[i], o.ids[i+1] = o.ids[i+1], o.ids[i]
			return true
		}
	}
	return false
}

// Apply permutes a built item list into display order: tracked roots in
// overlay order, each expanded group immediately followed by its
// children, then any untracked items in build order.
func (o *Ordering) Apply(items []Item) []Item {
	children := make(map[string][]Item)
	roots := make(map[string]Item)
	var rootOrder []string
	for _, it := range items {
		if it.IsChild() {
			children[it.ParentGroupID] = append(children[it.ParentGroupID], it)
			continue
		}
		roots[it.ID] = it
		rootOrder = append(rootOrder, it.ID)
	}

	out := make([]Item, 0, len(items))
	emitted := make(map[string]bool)
	emit := func(id string) {
		it, ok := roots[id]
		if !ok || emitted[id] {
			return
		}
		emitted[id] = true
		out = append(out, it)
		out = append(out, children[id]...)
	}
	for _, id := range o.ids {
		emit(id)
	}
	for _, id := range rootOrder {
		emit(id)
	}
	return out
}
