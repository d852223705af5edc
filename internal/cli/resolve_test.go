package cli

import (
	"context"
	"testing"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProjectID(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	p := &domain.Project{Name: "Warehouse A", OrderDate: date(t, "2024-06-01")}
	require.NoError(t, app.Projects.Create(ctx, p))

	t.Run("full id", func(t *testing.T) {
		id, err := resolveProjectID(ctx, app, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, id)
	})

	t.Run("unambiguous prefix", func(t *testing.T) {
		id, err := resolveProjectID(ctx, app, p.ID[:8])
		require.NoError(t, err)
		assert.Equal(t, p.ID, id)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := resolveProjectID(ctx, app, "zzzzzzzz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := resolveProjectID(ctx, app, "")
		require.Error(t, err)
	})
}

func TestResolveItemID(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	p := &domain.Project{Name: "Warehouse A", OrderDate: date(t, "2024-06-01")}
	require.NoError(t, app.Projects.Create(ctx, p))

	st := &domain.InstallationStage{
		ProjectID: p.ID,
		Name:      "Racking",
		StartDate: datePtr(t, "2024-06-03"),
		EndDate:   datePtr(t, "2024-06-05"),
	}
	require.NoError(t, app.Stages.Create(ctx, st))

	id, err := resolveItemID(ctx, app, p.ID, st.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, st.ID, id)

	_, err = resolveItemID(ctx, app, p.ID, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found on timeline")
}
