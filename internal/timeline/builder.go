package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/finestedm/procalc/internal/calendar"
	"github.com/finestedm/procalc/internal/domain"
)

const (
	// defaultProductionDays is the calendar-day length of a supplier's
	// production window when nothing more specific is known.
	defaultProductionDays = 28

	// deliverySpanDays is the business-day length of a delivery window.
	deliverySpanDays = 1

	// defaultTaskDays is the business-day length of a custom task with
	// no explicit dates.
	defaultTaskDays = 5
)

// Input aggregates the project records the builder derives items from.
type Input struct {
	OrderDate  time.Time
	Suppliers  []domain.Supplier
	Stages     []domain.InstallationStage
	Tasks      []domain.CustomTask
	Transports []domain.TransportGroup
}

// Build computes the normalized item list for one project: transport
// groups with their folded suppliers first, then ungrouped suppliers,
// then installation stages, then custom tasks. The result is stable
// insertion order; display permutation is the Ordering overlay's job.
func Build(in Input) []Item {
	var items []Item

	supplierByID := make(map[string]domain.Supplier, len(in.Suppliers))
	for _, s := range in.Suppliers {
		supplierByID[s.ID] = s
	}

	// Grouping pass: a transport linking at least two resolvable
	// suppliers becomes a group item and consumes them. Dangling
	// supplier references are skipped, not errored.
	consumed := make(map[string]bool)
	for _, tr := range in.Transports {
		var children []Item
		var linked []string
		for _, sid := range tr.LinkedSupplierIDs {
			s, ok := supplierByID[sid]
			if !ok {
				continue
			}
			child := supplierItem(s, in.OrderDate)
			child.ParentGroupID = tr.ID
			children = append(children, child)
			linked = append(linked, sid)
		}
		if len(children) < 2 {
			continue
		}
		for _, sid := range linked {
			consumed[sid] = true
		}

		group := Item{
			ID:                tr.ID,
			Kind:              KindTransportGroup,
			Name:              tr.Name,
			LinkedSupplierIDs: linked,
		}
		group.ProductionStart, group.ProductionEnd = unionWindow(children, prodWindow)
		group.DeliveryStart, group.DeliveryEnd = unionWindow(children, deliveryWindow)
		for _, c := range children {
			if c.DateEstimated {
				group.DateEstimated = true
			}
		}
		items = append(items, group)
		if tr.Expanded {
			items = append(items, children...)
		}
	}

	// Remaining suppliers become standalone delivery items.
	for _, s := range in.Suppliers {
		if consumed[s.ID] {
			continue
		}
		items = append(items, supplierItem(s, in.OrderDate))
	}

	// Installation stages are laid out sequentially after the last
	// delivery, in declared order, unless explicitly dated.
	cursor := calendar.AddBusinessDays(maxDeliveryEnd(items, in.OrderDate), 1)
	stages := make([]domain.InstallationStage, len(in.Stages))
	copy(stages, in.Stages)
	sort.SliceStable(stages, func(i, j int) bool { return stages[i].Seq < stages[j].Seq })
	for _, st := range stages {
		if st.Excluded {
			continue
		}
		item, end := stageItem(st, cursor, supplierByID)
		items = append(items, item)
		cursor = end
	}

	for _, ct := range in.Tasks {
		items = append(items, taskItem(ct, in.OrderDate))
	}

	return items
}

// supplierItem derives a standalone delivery item. The production
// window defaults to a fixed span after the order date; the delivery
// window follows the manual date when one parses, otherwise it is
// estimated right after production ends.
func supplierItem(s domain.Supplier, orderDate time.Time) Item {
	it := Item{
		ID:              s.ID,
		Kind:            KindSupplierDelivery,
		Name:            s.Name,
		ProductionStart: orderDate,
		ProductionEnd:   orderDate.AddDate(0, 0, defaultProductionDays),
	}
	if manual, ok := domain.ParseDate(s.DeliveryDate); ok && s.DeliveryDate != domain.DeliveryASAP {
		it.DeliveryStart = manual
	} else {
		it.DeliveryStart = it.ProductionEnd
		it.DateEstimated = true
	}
	it.DeliveryEnd = calendar.AddBusinessDays(it.DeliveryStart, deliverySpanDays)
	return it
}

// stageItem derives one stage item from the running cursor and returns
// the item together with the cursor position for the next stage (the
// stage's end, not end+1).
func stageItem(st domain.InstallationStage, cursor time.Time, suppliers map[string]domain.Supplier) (Item, time.Time) {
	duration := stageDuration(st, suppliers)

	start := cursor
	if st.StartDate != nil {
		start = *st.StartDate
	}
	end := calendar.AddBusinessDays(start, duration)
	if st.EndDate != nil {
		end = *st.EndDate
	}
	if end.Before(start) {
		end = start
	}

	it := Item{
		ID:              st.ID,
		Kind:            KindInstallationStage,
		Name:            st.Name,
		ProductionStart: start,
		ProductionEnd:   end,
		DeliveryStart:   start,
		DeliveryEnd:     end,
		DateEstimated:   st.StartDate == nil,
	}

	for slot, rc := range st.Rentals {
		if rc.Days <= 0 {
			continue
		}
		offset := rc.OffsetDays
		if offset < 0 {
			offset = 0
		}
		rStart := calendar.AddBusinessDays(start, offset)
		rEnd := calendar.AddBusinessDays(rStart, rc.Days)
		it.Rentals = append(it.Rentals, RentalWindow{
			Resource: rc.Resource,
			Slot:     slot,
			Start:    clampDate(rStart, start, end),
			End:      clampDate(rEnd, start, end),
		})
	}

	return it, end
}

// stageDuration computes the stage's length in business days from its
// calculation method. Minimum one day.
func stageDuration(st domain.InstallationStage, suppliers map[string]domain.Supplier) int {
	timeDays := 0
	if st.CalcMethod == domain.CalcTime || st.CalcMethod == domain.CalcBoth {
		totalMin := st.ManualLaborHours * 60
		for _, sid := range st.LinkedSupplierIDs {
			s, ok := suppliers[sid]
			if !ok {
				continue
			}
			for _, li := range s.LineItems {
				if li.Excluded {
					continue
				}
				totalMin += float64(li.Quantity) * li.UnitMinutes
			}
		}
		hoursPerDay := st.WorkDayHours * float64(st.InstallerCount)
		if hoursPerDay > 0 {
			timeDays = int(math.Ceil(totalMin / 60 / hoursPerDay))
		}
	}

	palletDays := 0
	if st.CalcMethod == domain.CalcPallets || st.CalcMethod == domain.CalcBoth {
		if st.PalletSpotsPerDay > 0 {
			palletDays = int(math.Ceil(st.PalletSpots / st.PalletSpotsPerDay))
		}
	}

	days := timeDays
	if palletDays > days {
		days = palletDays
	}
	if days < 1 {
		days = 1
	}
	return days
}

// taskItem derives a custom task item, defaulting unset dates to a
// short window after the order date. The window counts as estimated
// when either bound had to be inferred.
func taskItem(ct domain.CustomTask, orderDate time.Time) Item {
	start := orderDate
	if ct.StartDate != nil {
		start = *ct.StartDate
	}
	end := calendar.AddBusinessDays(start, defaultTaskDays)
	if ct.EndDate != nil {
		end = *ct.EndDate
	}
	estimated := ct.StartDate == nil || ct.EndDate == nil
	if end.Before(start) {
		end = start
	}
	return Item{
		ID:              ct.ID,
		Kind:            KindCustomTask,
		Name:            ct.Name,
		ProductionStart: start,
		ProductionEnd:   end,
		DeliveryStart:   start,
		DeliveryEnd:     end,
		DateEstimated:   estimated,
	}
}

func prodWindow(it Item) (time.Time, time.Time)     { return it.ProductionStart, it.ProductionEnd }
func deliveryWindow(it Item) (time.Time, time.Time) { return it.DeliveryStart, it.DeliveryEnd }

// unionWindow returns the smallest window covering every child's.
func unionWindow(children []Item, window func(Item) (time.Time, time.Time)) (time.Time, time.Time) {
	start, end := window(children[0])
	for _, c := range children[1:] {
		s, e := window(c)
		if s.Before(start) {
			start = s
		}
		if e.After(end) {
			end = e
		}
	}
	return start, end
}

// maxDeliveryEnd returns the latest delivery end across root items, or
// the fallback when there are no deliveries yet.
func maxDeliveryEnd(items []Item, fallback time.Time) time.Time {
	latest := fallback
	for _, it := range items {
		if it.DeliveryEnd.After(latest) {
			latest = it.DeliveryEnd
		}
	}
	return latest
}

func clampDate(d, lo, hi time.Time) time.Time {
	if d.Before(lo) {
		return lo
	}
	if d.After(hi) {
		return hi
	}
	return d
}
