package timeline

import (
	"testing"
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func findItem(t *testing.T, items []Item, id string) Item {
	t.Helper()
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %s not found", id)
	return Item{}
}

func TestBuild_SupplierManualDelivery(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-01"),
		Suppliers: []domain.Supplier{
			{ID: "s1", Name: "Racking Co", DeliveryDate: "2024-06-20"},
		},
	})
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, KindSupplierDelivery, it.Kind)
	assert.Equal(t, date("2024-06-01"), it.ProductionStart)
	assert.Equal(t, date("2024-06-29"), it.ProductionEnd)
	assert.Equal(t, date("2024-06-20"), it.DeliveryStart)
	// Thursday + 1 business day = Friday.
	assert.Equal(t, date("2024-06-21"), it.DeliveryEnd)
	assert.False(t, it.DateEstimated)
}

func TestBuild_SupplierASAPIsEstimated(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-01"),
		Suppliers: []domain.Supplier{{ID: "s1", DeliveryDate: domain.DeliveryASAP}},
	})
	require.Len(t, items, 1)

	it := items[0]
	// Delivery trails the production window: [2024-06-29, +1 business day].
	assert.Equal(t, date("2024-06-29"), it.DeliveryStart)
	assert.Equal(t, date("2024-07-01"), it.DeliveryEnd) // Saturday -> Monday
	assert.True(t, it.DateEstimated)
}

func TestBuild_SupplierMalformedDateFallsBack(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-01"),
		Suppliers: []domain.Supplier{{ID: "s1", DeliveryDate: "20.06.2024"}},
	})
	require.Len(t, items, 1)
	assert.True(t, items[0].DateEstimated)
	assert.Equal(t, items[0].ProductionEnd, items[0].DeliveryStart)
}

func TestBuild_TransportGroupConsumesSuppliers(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Suppliers: []domain.Supplier{
			{ID: "s1", DeliveryDate: "2024-06-10"},
			{ID: "s2", DeliveryDate: "2024-06-14"},
			{ID: "s3", DeliveryDate: "2024-06-12"},
		},
		Transports: []domain.TransportGroup{
			{ID: "t1", Name: "Combined", LinkedSupplierIDs: []string{"s1", "s2"}},
		},
	})

	// Group first, then the ungrouped supplier. Collapsed group emits no children.
	require.Len(t, items, 2)
	group := items[0]
	assert.Equal(t, KindTransportGroup, group.Kind)
	assert.Equal(t, []string{"s1", "s2"}, group.LinkedSupplierIDs)
	// Union of the children's delivery windows.
	assert.Equal(t, date("2024-06-10"), group.DeliveryStart)
	assert.Equal(t, date("2024-06-17"), group.DeliveryEnd) // Fri 14th + 1bd
	assert.Equal(t, "s3", items[1].ID)
}

func TestBuild_ExpandedGroupEmitsChildren(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Suppliers: []domain.Supplier{
			{ID: "s1", DeliveryDate: "2024-06-10"},
			{ID: "s2", DeliveryDate: "2024-06-14"},
		},
		Transports: []domain.TransportGroup{
			{ID: "t1", LinkedSupplierIDs: []string{"s1", "s2"}, Expanded: true},
		},
	})

	require.Len(t, items, 3)
	assert.Equal(t, "t1", items[0].ID)
	assert.Equal(t, "t1", items[1].ParentGroupID)
	assert.Equal(t, "t1", items[2].ParentGroupID)
	assert.True(t, items[1].IsChild())
}

func TestBuild_TransportGroupNeedsTwoResolvableSuppliers(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Suppliers: []domain.Supplier{{ID: "s1", DeliveryDate: "2024-06-10"}},
		Transports: []domain.TransportGroup{
			// Second link dangles, so the group dissolves.
			{ID: "t1", LinkedSupplierIDs: []string{"s1", "gone"}},
		},
	})
	require.Len(t, items, 1)
	assert.Equal(t, KindSupplierDelivery, items[0].Kind)
	assert.Equal(t, "s1", items[0].ID)
}

func TestBuild_StageCursorStartsAfterLastDelivery(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Suppliers: []domain.Supplier{{ID: "s1", DeliveryDate: "2024-06-14"}},
		Stages: []domain.InstallationStage{
			{ID: "st1", Seq: 1, CalcMethod: domain.CalcTime},
		},
	})

	st := findItem(t, items, "st1")
	// Delivery ends Monday 2024-06-17; stage starts one business day later.
	assert.Equal(t, date("2024-06-18"), st.ProductionStart)
	// No duration inputs: minimum one business day.
	assert.Equal(t, date("2024-06-19"), st.ProductionEnd)
	// Stage bars have no separate delivery leg.
	assert.Equal(t, st.ProductionStart, st.DeliveryStart)
	assert.Equal(t, st.ProductionEnd, st.DeliveryEnd)
	assert.True(t, st.DateEstimated)
}

func TestBuild_StageTimeDuration(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Suppliers: []domain.Supplier{{
			ID:           "s1",
			DeliveryDate: "2024-06-07",
			LineItems: []domain.LineItem{
				{Quantity: 10, UnitMinutes: 60},
				{Quantity: 100, UnitMinutes: 60, Excluded: true},
			},
		}},
		Stages: []domain.InstallationStage{{
			ID:                "st1",
			Seq:               1,
			CalcMethod:        domain.CalcTime,
			LinkedSupplierIDs: []string{"s1"},
			WorkDayHours:      8,
			InstallerCount:    1,
			ManualLaborHours:  2,
		}},
	})

	st := findItem(t, items, "st1")
	// 10h line items + 2h manual over 8h/day = ceil(1.5) = 2 business days.
	assert.Equal(t, 2, int(st.ProductionEnd.Sub(st.ProductionStart).Hours()/24))
}

func TestBuild_StagePalletDuration(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Stages: []domain.InstallationStage{{
			ID:                "st1",
			CalcMethod:        domain.CalcPallets,
			PalletSpots:       10,
			PalletSpotsPerDay: 4,
		}},
	})
	st := findItem(t, items, "st1")
	// ceil(10/4) = 3 business days: Tue 4th start, +3bd = Fri 7th.
	assert.Equal(t, date("2024-06-04"), st.ProductionStart)
	assert.Equal(t, date("2024-06-07"), st.ProductionEnd)
}

func TestBuild_StagesChainOnCursor(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Stages: []domain.InstallationStage{
			{ID: "st2", Seq: 2, CalcMethod: domain.CalcTime},
			{ID: "st1", Seq: 1, CalcMethod: domain.CalcTime},
		},
	})

	st1 := findItem(t, items, "st1")
	st2 := findItem(t, items, "st2")
	// Declared (Seq) order wins over slice order; the cursor moves to
	// the previous stage's end, not end+1.
	assert.Equal(t, st1.ProductionEnd, st2.ProductionStart)
}

func TestBuild_ExplicitStageDatesRespected(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Stages: []domain.InstallationStage{
			{ID: "st1", Seq: 1, CalcMethod: domain.CalcTime,
				StartDate: datePtr("2024-07-01"), EndDate: datePtr("2024-07-05")},
			{ID: "st2", Seq: 2, CalcMethod: domain.CalcTime},
		},
	})

	st1 := findItem(t, items, "st1")
	st2 := findItem(t, items, "st2")
	assert.Equal(t, date("2024-07-01"), st1.ProductionStart)
	assert.Equal(t, date("2024-07-05"), st1.ProductionEnd)
	assert.False(t, st1.DateEstimated)
	// The next unset stage picks up from the explicit end.
	assert.Equal(t, date("2024-07-05"), st2.ProductionStart)
}

func TestBuild_ExcludedStageSkipped(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Stages: []domain.InstallationStage{
			{ID: "st1", Seq: 1, CalcMethod: domain.CalcTime, Excluded: true},
		},
	})
	assert.Empty(t, items)
}

func TestBuild_RentalClampedIntoStage(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-05-01"),
		Stages: []domain.InstallationStage{{
			ID:         "st1",
			CalcMethod: domain.CalcTime,
			StartDate:  datePtr("2024-06-03"),
			EndDate:    datePtr("2024-06-10"),
			Rentals: [domain.StageRentalSlots]domain.RentalConfig{
				{Resource: domain.RentalForklift, OffsetDays: 2, Days: 3},
				{Resource: domain.RentalScissorLift, OffsetDays: -1, Days: 20},
			},
		}},
	})

	st := findItem(t, items, "st1")
	require.Len(t, st.Rentals, 2)

	fork := st.Rentals[0]
	assert.Equal(t, date("2024-06-05"), fork.Start) // Mon + 2bd = Wed
	assert.Equal(t, date("2024-06-10"), fork.End)   // Wed + 3bd = Mon, at the cap

	lift := st.Rentals[1]
	// Negative offset clamps to the stage start; an oversized span
	// clamps to the stage end rather than being rejected.
	assert.Equal(t, date("2024-06-03"), lift.Start)
	assert.Equal(t, date("2024-06-10"), lift.End)
}

func TestBuild_RentalZeroDaysOmitted(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Stages: []domain.InstallationStage{{
			ID:         "st1",
			CalcMethod: domain.CalcTime,
			Rentals: [domain.StageRentalSlots]domain.RentalConfig{
				{Resource: domain.RentalForklift, OffsetDays: 1, Days: 0},
			},
		}},
	})
	assert.Empty(t, findItem(t, items, "st1").Rentals)
}

func TestBuild_CustomTaskDefaults(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Tasks:     []domain.CustomTask{{ID: "c1", Name: "Survey"}},
	})
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, KindCustomTask, it.Kind)
	assert.Equal(t, date("2024-06-03"), it.ProductionStart)
	assert.Equal(t, date("2024-06-10"), it.ProductionEnd) // +5 business days
	assert.True(t, it.DateEstimated)
}

func TestBuild_CustomTaskPartialDatesStayEstimated(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Tasks: []domain.CustomTask{
			{ID: "c1", Name: "Survey", StartDate: datePtr("2024-06-05")},
			{ID: "c2", Name: "Handover", StartDate: datePtr("2024-06-05"), EndDate: datePtr("2024-06-07")},
		},
	})
	require.Len(t, items, 2)

	// The defaulted end still makes c1's window an estimate.
	c1 := findItem(t, items, "c1")
	assert.Equal(t, date("2024-06-05"), c1.ProductionStart)
	assert.Equal(t, date("2024-06-12"), c1.ProductionEnd) // +5 business days
	assert.True(t, c1.DateEstimated)

	c2 := findItem(t, items, "c2")
	assert.False(t, c2.DateEstimated)
}

func TestBuild_OutputOrderStable(t *testing.T) {
	items := Build(Input{
		OrderDate: date("2024-06-03"),
		Suppliers: []domain.Supplier{
			{ID: "s1", DeliveryDate: "2024-06-10"},
			{ID: "s2", DeliveryDate: "2024-06-11"},
			{ID: "s3", DeliveryDate: "2024-06-12"},
		},
		Transports: []domain.TransportGroup{
			{ID: "t1", LinkedSupplierIDs: []string{"s1", "s2"}},
		},
		Stages: []domain.InstallationStage{{ID: "st1", CalcMethod: domain.CalcTime}},
		Tasks:  []domain.CustomTask{{ID: "c1"}},
	})

	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"t1", "s3", "st1", "c1"}, ids)
}
