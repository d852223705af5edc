package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/repository"
	"github.com/google/uuid"
)

type transportService struct {
	transports repository.TransportRepo
}

func NewTransportService(transports repository.TransportRepo) TransportService {
	return &transportService{transports: transports}
}

func (s *transportService) Create(ctx context.Context, tr *domain.TransportGroup) error {
	if tr.Name == "" {
		return fmt.Errorf("transport group name is required")
	}
	if tr.ID == "" {
		tr.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	tr.CreatedAt = now
	tr.UpdatedAt = now
	return s.transports.Create(ctx, tr)
}

func (s *transportService) GetByID(ctx context.Context, id string) (*domain.TransportGroup, error) {
	return s.transports.GetByID(ctx, id)
}

func (s *transportService) ListByProject(ctx context.Context, projectID string) ([]*domain.TransportGroup, error) {
	return s.transports.ListByProject(ctx, projectID)
}

func (s *transportService) Update(ctx context.Context, tr *domain.TransportGroup) error {
	tr.UpdatedAt = time.Now().UTC()
	return s.transports.Update(ctx, tr)
}

func (s *transportService) SetExpanded(ctx context.Context, id string, expanded bool) error {
	return s.transports.SetExpanded(ctx, id, expanded)
}

func (s *transportService) Delete(ctx context.Context, id string) error {
	return s.transports.Delete(ctx, id)
}
