package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/finestedm/procalc/internal/cli"
	"github.com/finestedm/procalc/internal/db"
	"github.com/finestedm/procalc/internal/repository"
	"github.com/finestedm/procalc/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.procalc/procalc.db
	dbPath := os.Getenv("PROCALC_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".procalc", "procalc.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	supplierRepo := repository.NewSQLiteSupplierRepo(database)
	stageRepo := repository.NewSQLiteStageRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	transportRepo := repository.NewSQLiteTransportRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	orderRepo := repository.NewSQLiteDisplayOrderRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Cascade commits and link edits are logged when requested.
	var observers []service.UseCaseObserver
	if os.Getenv("PROCALC_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Projects:   service.NewProjectService(projectRepo),
		Suppliers:  service.NewSupplierService(supplierRepo),
		Stages:     service.NewStageService(stageRepo),
		Tasks:      service.NewTaskService(taskRepo),
		Transports: service.NewTransportService(transportRepo),
		Timeline: service.NewTimelineService(
			projectRepo, supplierRepo, stageRepo, taskRepo, transportRepo,
			depRepo, orderRepo, uow, observers...),
		Import: service.NewImportService(uow),
	}

	// Detect interactive terminal for the chart TUI and entry forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
