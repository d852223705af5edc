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

func TestSupplierService_CreateGeneratesLineItemIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, repository.NewSQLiteProjectRepo(db).Create(ctx, proj))

	svc := NewSupplierService(repository.NewSQLiteSupplierRepo(db))
	sup := &domain.Supplier{
		ProjectID:    proj.ID,
		Name:         "Racking Co",
		DeliveryDate: domain.DeliveryASAP,
		LineItems:    []domain.LineItem{{Name: "Frame", Quantity: 10, UnitMinutes: 12}},
	}
	require.NoError(t, svc.Create(ctx, sup))
	assert.NotEmpty(t, sup.ID)
	assert.NotEmpty(t, sup.LineItems[0].ID)
}

func TestSupplierService_RejectsMalformedDeliveryDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, repository.NewSQLiteProjectRepo(db).Create(ctx, proj))

	svc := NewSupplierService(repository.NewSQLiteSupplierRepo(db))
	err := svc.Create(ctx, &domain.Supplier{
		ProjectID:    proj.ID,
		Name:         "Typo Co",
		DeliveryDate: "next tuesday",
	})
	assert.ErrorContains(t, err, "not YYYY-MM-DD")
}

func TestSupplierService_AcceptsEmptyAndASAP(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, repository.NewSQLiteProjectRepo(db).Create(ctx, proj))

	svc := NewSupplierService(repository.NewSQLiteSupplierRepo(db))
	require.NoError(t, svc.Create(ctx, &domain.Supplier{ProjectID: proj.ID, Name: "A"}))
	require.NoError(t, svc.Create(ctx, &domain.Supplier{
		ProjectID: proj.ID, Name: "B", DeliveryDate: domain.DeliveryASAP}))
}
