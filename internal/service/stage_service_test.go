package service

import (
	"context"
	"testing"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/repository"
	"github.com/finestedm/procalc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageService_CreateDefaultsCalcMethod(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, repository.NewSQLiteProjectRepo(db).Create(ctx, proj))

	svc := NewStageService(repository.NewSQLiteStageRepo(db))
	st := &domain.InstallationStage{ProjectID: proj.ID, Name: "Racking"}
	require.NoError(t, svc.Create(ctx, st))
	assert.Equal(t, domain.CalcTime, st.CalcMethod)
}

func TestStageService_RejectsInvalidCalcMethod(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, repository.NewSQLiteProjectRepo(db).Create(ctx, proj))

	svc := NewStageService(repository.NewSQLiteStageRepo(db))
	err := svc.Create(ctx, &domain.InstallationStage{
		ProjectID: proj.ID, Name: "Bad", CalcMethod: "guesswork"})
	assert.ErrorContains(t, err, "calculation method")
}

func TestStageService_RejectsInvertedDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, repository.NewSQLiteProjectRepo(db).Create(ctx, proj))

	svc := NewStageService(repository.NewSQLiteStageRepo(db))
	err := svc.Create(ctx, &domain.InstallationStage{
		ProjectID: proj.ID,
		Name:      "Backwards",
		StartDate: datePtr(t, "2024-07-10"),
		EndDate:   datePtr(t, "2024-07-05"),
	})
	assert.ErrorContains(t, err, "precedes")
}

func TestStageService_RejectsNegativeRental(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, repository.NewSQLiteProjectRepo(db).Create(ctx, proj))

	svc := NewStageService(repository.NewSQLiteStageRepo(db))
	st := &domain.InstallationStage{ProjectID: proj.ID, Name: "Rental"}
	st.Rentals[0] = domain.RentalConfig{Resource: domain.RentalForklift, OffsetDays: -1, Days: 2}
	err := svc.Create(ctx, st)
	assert.ErrorContains(t, err, "rental slot 0")
}
