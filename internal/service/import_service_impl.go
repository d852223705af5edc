package service

import (
	"context"
	"fmt"

	"github.com/finestedm/procalc/internal/db"
	"github.com/finestedm/procalc/internal/importer"
	"github.com/finestedm/procalc/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

// NewImportService creates an import service. All writes for one import
// happen inside a single transaction so a mid-file failure leaves
// nothing behind.
func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, generated.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}

		supplierRepo := repository.NewSQLiteSupplierRepo(tx)
		for _, sup := range generated.Suppliers {
			if err := supplierRepo.Create(ctx, sup); err != nil {
				return fmt.Errorf("creating supplier %q: %w", sup.Name, err)
			}
		}

		stageRepo := repository.NewSQLiteStageRepo(tx)
		for _, st := range generated.Stages {
			if err := stageRepo.Create(ctx, st); err != nil {
				return fmt.Errorf("creating stage %q: %w", st.Name, err)
			}
		}

		taskRepo := repository.NewSQLiteTaskRepo(tx)
		for _, ct := range generated.Tasks {
			if err := taskRepo.Create(ctx, ct); err != nil {
				return fmt.Errorf("creating task %q: %w", ct.Name, err)
			}
		}

		transportRepo := repository.NewSQLiteTransportRepo(tx)
		for _, tr := range generated.Transports {
			if err := transportRepo.Create(ctx, tr); err != nil {
				return fmt.Errorf("creating transport group %q: %w", tr.Name, err)
			}
		}

		depRepo := repository.NewSQLiteDependencyRepo(tx)
		for i := range generated.Dependencies {
			if err := depRepo.Create(ctx, &generated.Dependencies[i]); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Project:         generated.Project,
		SupplierCount:   len(generated.Suppliers),
		StageCount:      len(generated.Stages),
		TaskCount:       len(generated.Tasks),
		TransportCount:  len(generated.Transports),
		DependencyCount: len(generated.Dependencies),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
