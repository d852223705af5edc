package repository

import (
	"context"
	"testing"
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteTaskRepo(db)
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask(proj.ID, "Site survey", testutil.WithTaskDates(start, end))
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site survey", got.Name)
	require.NotNil(t, got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2024-06-03", domain.FormatDate(*got.StartDate))
	assert.Equal(t, "2024-06-05", domain.FormatDate(*got.EndDate))
}

func TestTaskRepo_GetMissing(t *testing.T) {
	db := testutil.NewTestDB(t)

	_, err := NewSQLiteTaskRepo(db).GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTaskRepo_DatelessTaskRoundTrips(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteTaskRepo(db)
	task := testutil.NewTestTask(proj.ID, "Permits")
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StartDate)
	assert.Nil(t, got.EndDate)
}

func TestTaskRepo_SetDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteTaskRepo(db)
	task := testutil.NewTestTask(proj.ID, "Permits")
	require.NoError(t, repo.Create(ctx, task))

	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetDates(ctx, task.ID, start, end))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2024-07-01", domain.FormatDate(*got.StartDate))
	assert.Equal(t, "2024-07-03", domain.FormatDate(*got.EndDate))
}

func TestTaskRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteTaskRepo(db)
	task := testutil.NewTestTask(proj.ID, "Permits")
	require.NoError(t, repo.Create(ctx, task))
	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err := repo.GetByID(ctx, task.ID)
	assert.Error(t, err)
}
