package timeline

import (
	"testing"
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stageBar(id, start, end string) Item {
	return Item{
		ID:              id,
		Kind:            KindInstallationStage,
		ProductionStart: date(start),
		ProductionEnd:   date(end),
		DeliveryStart:   date(start),
		DeliveryEnd:     date(end),
	}
}

func edge(from, to string) domain.Dependency {
	return domain.Dependency{ID: from + "->" + to, FromID: from, ToID: to, Kind: domain.FinishToStart}
}

func TestPropagator_ShiftsViolatedSuccessor(t *testing.T) {
	// A ends Friday 2024-06-07; B originally starts the Monday before.
	items := []Item{
		stageBar("a", "2024-06-03", "2024-06-07"),
		stageBar("b", "2024-06-03", "2024-06-06"),
	}
	p := NewPropagator(items, []domain.Dependency{edge("a", "b")})

	updates := p.RunFrom("a")
	require.Contains(t, updates, "b")
	assert.Equal(t, date("2024-06-07"), updates["b"].Start)
	// B keeps its 3-calendar-day span.
	assert.Equal(t, date("2024-06-10"), updates["b"].End)
}

func TestPropagator_SeededCascadeIsTransitive(t *testing.T) {
	items := []Item{
		stageBar("a", "2024-06-03", "2024-06-05"),
		stageBar("b", "2024-06-05", "2024-06-07"),
		stageBar("c", "2024-06-07", "2024-06-12"),
	}
	deps := []domain.Dependency{edge("a", "b"), edge("b", "c")}
	p := NewPropagator(items, deps)

	// A is dragged 5 days right.
	updates := p.Run(map[string]Update{
		"a": {Start: date("2024-06-08"), End: date("2024-06-10")},
	})

	require.Len(t, updates, 3)
	assert.Equal(t, date("2024-06-10"), updates["b"].Start)
	assert.Equal(t, date("2024-06-12"), updates["b"].End)
	assert.Equal(t, date("2024-06-12"), updates["c"].Start)
	assert.Equal(t, date("2024-06-17"), updates["c"].End)

	// No edge is left violated.
	for _, d := range deps {
		src, tgt := updates[d.FromID], updates[d.ToID]
		assert.False(t, tgt.Start.Before(src.End), "%s -> %s violated", d.FromID, d.ToID)
	}
}

func TestPropagator_ConsistentGraphProducesNothing(t *testing.T) {
	items := []Item{
		stageBar("a", "2024-06-03", "2024-06-05"),
		stageBar("b", "2024-06-05", "2024-06-07"),
	}
	p := NewPropagator(items, []domain.Dependency{edge("a", "b")})
	assert.Empty(t, p.RunFrom("a"))
	assert.Empty(t, p.Run(nil))
}

func TestPropagator_NeverPullsSuccessorEarlier(t *testing.T) {
	items := []Item{
		stageBar("a", "2024-06-03", "2024-06-05"),
		stageBar("b", "2024-06-17", "2024-06-19"),
	}
	p := NewPropagator(items, []domain.Dependency{edge("a", "b")})

	// A moves earlier; the satisfied, later B must not follow.
	updates := p.Run(map[string]Update{
		"a": {Start: date("2024-05-27"), End: date("2024-05-29")},
	})
	_, moved := updates["b"]
	assert.False(t, moved)
}

func TestPropagator_DanglingEdgeSkipped(t *testing.T) {
	items := []Item{stageBar("a", "2024-06-03", "2024-06-07")}
	deps := []domain.Dependency{edge("a", "ghost"), edge("ghost2", "a")}
	p := NewPropagator(items, deps)

	updates := p.Run(map[string]Update{
		"a": {Start: date("2024-06-10"), End: date("2024-06-14")},
	})
	require.Len(t, updates, 1)
	assert.Contains(t, updates, "a")
}

func TestPropagator_DiamondTakesLargestShift(t *testing.T) {
	// a feeds d directly and through b; b's path pushes d further than
	// a's does. d must end up behind the later of the two.
	items := []Item{
		stageBar("a", "2024-06-03", "2024-06-05"),
		stageBar("b", "2024-06-05", "2024-06-12"),
		stageBar("d", "2024-06-05", "2024-06-07"),
	}
	deps := []domain.Dependency{edge("a", "d"), edge("a", "b"), edge("b", "d")}
	p := NewPropagator(items, deps)

	updates := p.Run(map[string]Update{
		"a": {Start: date("2024-06-10"), End: date("2024-06-12")},
	})

	// b lands at [06-12, 06-19]; d must follow b's end, not a's.
	require.Contains(t, updates, "d")
	assert.Equal(t, date("2024-06-19"), updates["d"].Start)
}

func TestPropagator_CycleTerminates(t *testing.T) {
	items := []Item{
		stageBar("a", "2024-06-03", "2024-06-05"),
		stageBar("b", "2024-06-03", "2024-06-05"),
	}
	deps := []domain.Dependency{edge("a", "b"), edge("b", "a")}
	p := NewPropagator(items, deps)

	done := make(chan map[string]Update, 1)
	go func() {
		done <- p.Run(map[string]Update{
			"a": {Start: date("2024-06-10"), End: date("2024-06-12")},
		})
	}()
	select {
	case updates := <-done:
		assert.Contains(t, updates, "b")
	case <-time.After(5 * time.Second):
		t.Fatal("propagation did not terminate on a cyclic graph")
	}
}

func TestTranslateUpdates_PerKindRouting(t *testing.T) {
	items := []Item{
		stageBar("st1", "2024-06-03", "2024-06-05"),
		{ID: "c1", Kind: KindCustomTask},
		{ID: "s1", Kind: KindSupplierDelivery},
		{ID: "t1", Kind: KindTransportGroup, LinkedSupplierIDs: []string{"s2", "s3"}},
	}
	updates := map[string]Update{
		"st1":  {Start: date("2024-06-10"), End: date("2024-06-12")},
		"c1":   {Start: date("2024-06-11"), End: date("2024-06-12")},
		"s1":   {Start: date("2024-06-14"), End: date("2024-06-17")},
		"t1":   {Start: date("2024-06-20"), End: date("2024-06-24")},
		"gone": {Start: date("2024-06-01"), End: date("2024-06-02")},
	}

	set := TranslateUpdates(items, updates)

	require.Len(t, set.Stages, 1)
	assert.Equal(t, "st1", set.Stages[0].ID)
	assert.Equal(t, date("2024-06-10"), set.Stages[0].Start)
	assert.Equal(t, date("2024-06-12"), set.Stages[0].End)

	require.Len(t, set.Tasks, 1)
	assert.Equal(t, "c1", set.Tasks[0].ID)

	// The direct supplier plus the group fan-out, sorted by id. Only
	// the start crosses the boundary; the end is re-derived on build.
	require.Len(t, set.Suppliers, 3)
	assert.Equal(t, "s1", set.Suppliers[0].ID)
	assert.Equal(t, date("2024-06-14"), set.Suppliers[0].DeliveryDate)
	assert.Equal(t, "s2", set.Suppliers[1].ID)
	assert.Equal(t, date("2024-06-20"), set.Suppliers[1].DeliveryDate)
	assert.Equal(t, "s3", set.Suppliers[2].ID)
}

func TestTranslateUpdates_EmptySet(t *testing.T) {
	assert.True(t, TranslateUpdates(nil, nil).Empty())
}
