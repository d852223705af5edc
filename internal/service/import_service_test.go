package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/finestedm/procalc/internal/repository"
	"github.com/finestedm/procalc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importFixture = `{
  "project": {"name": "Warehouse A", "order_date": "2024-06-01", "protocol_date": "2024-09-30"},
  "defaults": {"calc_method": "time", "work_day_hours": 8, "installer_count": 3},
  "suppliers": [
    {"ref": "s1", "name": "Racking Co", "delivery_date": "2024-07-01",
     "line_items": [{"name": "Frame", "quantity": 40, "unit_minutes": 12}]},
    {"ref": "s2", "name": "Conveyor Co", "delivery_date": "ASAP"}
  ],
  "stages": [
    {"ref": "st1", "name": "Racking install", "seq": 1, "supplier_refs": ["s1"],
     "rentals": [{"resource": "forklift", "offset_days": 1, "days": 3}]}
  ],
  "tasks": [{"ref": "t1", "name": "Site survey"}],
  "transports": [{"ref": "tr1", "name": "Combined truck", "supplier_refs": ["s1", "s2"]}],
  "dependencies": [{"predecessor_ref": "s1", "successor_ref": "st1"}]
}`

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportService_ImportProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(db))

	result, err := svc.ImportProject(ctx, writeImportFile(t, importFixture))
	require.NoError(t, err)

	assert.Equal(t, "Warehouse A", result.Project.Name)
	assert.Equal(t, 2, result.SupplierCount)
	assert.Equal(t, 1, result.StageCount)
	assert.Equal(t, 1, result.TaskCount)
	assert.Equal(t, 1, result.TransportCount)
	assert.Equal(t, 1, result.DependencyCount)

	suppliers, err := repository.NewSQLiteSupplierRepo(db).ListByProject(ctx, result.Project.ID)
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	assert.Len(t, suppliers[0].LineItems, 1)

	stages, err := repository.NewSQLiteStageRepo(db).ListByProject(ctx, result.Project.ID)
	require.NoError(t, err)
	require.Len(t, stages, 1)
	assert.Equal(t, 3, stages[0].InstallerCount)
	assert.Equal(t, 3, stages[0].Rentals[0].Days)
	assert.Equal(t, []string{suppliers[0].ID}, stages[0].LinkedSupplierIDs)
}

func TestImportService_ValidationFailureBeforeWrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(db))

	bad := `{"project": {"name": "", "order_date": "nope"}}`
	_, err := svc.ImportProject(ctx, writeImportFile(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count))
	assert.Zero(t, count)
}

func TestImportService_MidImportFailureRollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	uow := &testutil.FailOnNthExecUoW{DB: db, FailOn: 4, Err: fmt.Errorf("disk full")}
	svc := NewImportService(uow)

	_, err := svc.ImportProject(ctx, writeImportFile(t, importFixture))
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count))
	assert.Zero(t, count, "partial import must not survive")
}

func TestImportService_MissingFile(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(db))

	_, err := svc.ImportProject(context.Background(), "/does/not/exist.json")
	assert.Error(t, err)
}
