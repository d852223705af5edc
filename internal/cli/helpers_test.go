package cli

import (
	"testing"
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/repository"
	"github.com/finestedm/procalc/internal/service"
	"github.com/finestedm/procalc/internal/testutil"
)

// newTestApp wires a full App over a fresh in-memory database.
func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	projects := repository.NewSQLiteProjectRepo(database)
	suppliers := repository.NewSQLiteSupplierRepo(database)
	stages := repository.NewSQLiteStageRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	transports := repository.NewSQLiteTransportRepo(database)
	deps := repository.NewSQLiteDependencyRepo(database)
	order := repository.NewSQLiteDisplayOrderRepo(database)
	uow := testutil.NewTestUoW(database)

	return &App{
		Projects:   service.NewProjectService(projects),
		Suppliers:  service.NewSupplierService(suppliers),
		Stages:     service.NewStageService(stages),
		Tasks:      service.NewTaskService(tasks),
		Transports: service.NewTransportService(transports),
		Timeline: service.NewTimelineService(
			projects, suppliers, stages, tasks, transports, deps, order, uow),
		Import:        service.NewImportService(uow),
		IsInteractive: func() bool { return true },
	}
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, ok := domain.ParseDate(s)
	if !ok {
		t.Fatalf("bad date %q", s)
	}
	return d
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d := date(t, s)
	return &d
}
