package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/repository"
	"github.com/google/uuid"
)

type stageService struct {
	stages repository.StageRepo
}

func NewStageService(stages repository.StageRepo) StageService {
	return &stageService{stages: stages}
}

func (s *stageService) Create(ctx context.Context, st *domain.InstallationStage) error {
	if err := validateStage(st); err != nil {
		return err
	}
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now
	return s.stages.Create(ctx, st)
}

func (s *stageService) GetByID(ctx context.Context, id string) (*domain.InstallationStage, error) {
	return s.stages.GetByID(ctx, id)
}

func (s *stageService) ListByProject(ctx context.Context, projectID string) ([]*domain.InstallationStage, error) {
	return s.stages.ListByProject(ctx, projectID)
}

func (s *stageService) Update(ctx context.Context, st *domain.InstallationStage) error {
	if err := validateStage(st); err != nil {
		return err
	}
	st.UpdatedAt = time.Now().UTC()
	return s.stages.Update(ctx, st)
}

func (s *stageService) Delete(ctx context.Context, id string) error {
	return s.stages.Delete(ctx, id)
}

func validateStage(st *domain.InstallationStage) error {
	if st.Name == "" {
		return fmt.Errorf("stage name is required")
	}
	if st.CalcMethod == "" {
		st.CalcMethod = domain.CalcTime
	}
	if !domain.ValidCalcMethods[string(st.CalcMethod)] {
		return fmt.Errorf("invalid calculation method %q", st.CalcMethod)
	}
	if st.StartDate != nil && st.EndDate != nil && st.EndDate.Before(*st.StartDate) {
		return fmt.Errorf("stage end date precedes start date")
	}
	for i, r := range st.Rentals {
		if r.Days < 0 || r.OffsetDays < 0 {
			return fmt.Errorf("rental slot %d has negative duration or offset", i)
		}
	}
	return nil
}
