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

func TestSupplierRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteSupplierRepo(db)
	sup := testutil.NewTestSupplier(proj.ID, "Racking Co",
		testutil.WithDeliveryDate("2024-07-01"),
		testutil.WithLineItem("Upright frame", 40, 12),
		testutil.WithLineItem("Beam", 160, 3),
	)
	require.NoError(t, repo.Create(ctx, sup))

	fetched, err := repo.GetByID(ctx, sup.ID)
	require.NoError(t, err)
	assert.Equal(t, "Racking Co", fetched.Name)
	assert.Equal(t, "2024-07-01", fetched.DeliveryDate)
	require.Len(t, fetched.LineItems, 2)
	assert.Equal(t, "Upright frame", fetched.LineItems[0].Name)
	assert.Equal(t, 40, fetched.LineItems[0].Quantity)
	assert.Equal(t, 12.0, fetched.LineItems[0].UnitMinutes)
	assert.Equal(t, "Beam", fetched.LineItems[1].Name)
}

func TestSupplierRepo_ASAPSentinelRoundTrips(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteSupplierRepo(db)
	sup := testutil.NewTestSupplier(proj.ID, "Conveyor Co",
		testutil.WithDeliveryDate(domain.DeliveryASAP))
	require.NoError(t, repo.Create(ctx, sup))

	fetched, err := repo.GetByID(ctx, sup.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryASAP, fetched.DeliveryDate)
	assert.False(t, fetched.HasManualDelivery())
}

func TestSupplierRepo_UpdateReplacesLineItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteSupplierRepo(db)
	sup := testutil.NewTestSupplier(proj.ID, "Mezzanine Co",
		testutil.WithLineItem("Column", 12, 20))
	require.NoError(t, repo.Create(ctx, sup))

	sup.LineItems = []domain.LineItem{
		{ID: "li-1", Name: "Deck panel", Quantity: 80, UnitMinutes: 5},
	}
	sup.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, sup))

	fetched, err := repo.GetByID(ctx, sup.ID)
	require.NoError(t, err)
	require.Len(t, fetched.LineItems, 1)
	assert.Equal(t, "Deck panel", fetched.LineItems[0].Name)
}

func TestSupplierRepo_SetDeliveryDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteSupplierRepo(db)
	sup := testutil.NewTestSupplier(proj.ID, "Doors Co")
	require.NoError(t, repo.Create(ctx, sup))

	date := time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetDeliveryDate(ctx, sup.ID, date))

	fetched, err := repo.GetByID(ctx, sup.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-08-05", fetched.DeliveryDate)
	assert.True(t, fetched.HasManualDelivery())
}

func TestSupplierRepo_DeleteCascadesLineItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteSupplierRepo(db)
	sup := testutil.NewTestSupplier(proj.ID, "Gone Co",
		testutil.WithLineItem("Thing", 1, 1))
	require.NoError(t, repo.Create(ctx, sup))
	require.NoError(t, repo.Delete(ctx, sup.ID))

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM supplier_line_items WHERE supplier_id = ?`, sup.ID).Scan(&count))
	assert.Zero(t, count)
}
