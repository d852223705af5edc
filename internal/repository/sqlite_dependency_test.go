package repository

import (
	"context"
	"testing"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyRepo_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteDependencyRepo(db)
	dep := testutil.NewTestDependency(proj.ID, "item-a", "item-b")
	require.NoError(t, repo.Create(ctx, dep))

	deps, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "item-a", deps[0].FromID)
	assert.Equal(t, "item-b", deps[0].ToID)
	assert.Equal(t, domain.FinishToStart, deps[0].Kind)
}

func TestDependencyRepo_DuplicatePairRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteDependencyRepo(db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestDependency(proj.ID, "a", "b")))
	err := repo.Create(ctx, testutil.NewTestDependency(proj.ID, "a", "b"))
	assert.Error(t, err)
}

func TestDependencyRepo_Exists(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteDependencyRepo(db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestDependency(proj.ID, "a", "b")))

	exists, err := repo.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "b", "a")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDependencyRepo_DeleteByPair(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteDependencyRepo(db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestDependency(proj.ID, "a", "b")))
	require.NoError(t, repo.DeleteByPair(ctx, "a", "b"))

	deps, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, deps)
}
