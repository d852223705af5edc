package repository

import (
	"context"
	"time"

	"github.com/finestedm/procalc/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type SupplierRepo interface {
	Create(ctx context.Context, s *domain.Supplier) error
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Supplier, error)
	Update(ctx context.Context, s *domain.Supplier) error
	// SetDeliveryDate rewrites only the manual delivery date; the
	// delivery window end is re-derived on the next timeline build.
	SetDeliveryDate(ctx context.Context, id string, date time.Time) error
	Delete(ctx context.Context, id string) error
}

type StageRepo interface {
	Create(ctx context.Context, st *domain.InstallationStage) error
	GetByID(ctx context.Context, id string) (*domain.InstallationStage, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.InstallationStage, error)
	Update(ctx context.Context, st *domain.InstallationStage) error
	// SetDates pins the stage to an explicit window.
	SetDates(ctx context.Context, id string, start, end time.Time) error
	// SetRentalOffset rewrites one rental slot's business-day offset.
	SetRentalOffset(ctx context.Context, id string, slot, offsetDays int) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, ct *domain.CustomTask) error
	GetByID(ctx context.Context, id string) (*domain.CustomTask, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.CustomTask, error)
	Update(ctx context.Context, ct *domain.CustomTask) error
	SetDates(ctx context.Context, id string, start, end time.Time) error
	Delete(ctx context.Context, id string) error
}

type TransportRepo interface {
	Create(ctx context.Context, tr *domain.TransportGroup) error
	GetByID(ctx context.Context, id string) (*domain.TransportGroup, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.TransportGroup, error)
	Update(ctx context.Context, tr *domain.TransportGroup) error
	SetExpanded(ctx context.Context, id string, expanded bool) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error)
	Exists(ctx context.Context, fromID, toID string) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteByPair(ctx context.Context, fromID, toID string) error
}

// DisplayOrderRepo persists the Ordering overlay's explicit item order.
type DisplayOrderRepo interface {
	Get(ctx context.Context, projectID string) ([]string, error)
	Save(ctx context.Context, projectID string, itemIDs []string) error
}
