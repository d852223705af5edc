package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks repository.TaskRepo
}

func NewTaskService(tasks repository.TaskRepo) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, ct *domain.CustomTask) error {
	if ct.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if ct.StartDate != nil && ct.EndDate != nil && ct.EndDate.Before(*ct.StartDate) {
		return fmt.Errorf("task end date precedes start date")
	}
	if ct.ID == "" {
		ct.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	ct.CreatedAt = now
	ct.UpdatedAt = now
	return s.tasks.Create(ctx, ct)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.CustomTask, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.CustomTask, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, ct *domain.CustomTask) error {
	if ct.StartDate != nil && ct.EndDate != nil && ct.EndDate.Before(*ct.StartDate) {
		return fmt.Errorf("task end date precedes start date")
	}
	ct.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, ct)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
