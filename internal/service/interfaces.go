package service

import (
	"context"
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/timeline"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type SupplierService interface {
	Create(ctx context.Context, s *domain.Supplier) error
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Supplier, error)
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id string) error
}

type StageService interface {
	Create(ctx context.Context, st *domain.InstallationStage) error
	GetByID(ctx context.Context, id string) (*domain.InstallationStage, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.InstallationStage, error)
	Update(ctx context.Context, st *domain.InstallationStage) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, ct *domain.CustomTask) error
	GetByID(ctx context.Context, id string) (*domain.CustomTask, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.CustomTask, error)
	Update(ctx context.Context, ct *domain.CustomTask) error
	Delete(ctx context.Context, id string) error
}

type TransportService interface {
	Create(ctx context.Context, tr *domain.TransportGroup) error
	GetByID(ctx context.Context, id string) (*domain.TransportGroup, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.TransportGroup, error)
	Update(ctx context.Context, tr *domain.TransportGroup) error
	SetExpanded(ctx context.Context, id string, expanded bool) error
	Delete(ctx context.Context, id string) error
}

// TimelineView is a fully derived chart snapshot for one project:
// built items in display order plus the dependency edges between them.
type TimelineView struct {
	Project      *domain.Project
	Items        []timeline.Item
	Dependencies []domain.Dependency
}

type TimelineService interface {
	// Load builds the item list from the project's records and applies
	// the persisted display order.
	Load(ctx context.Context, projectID string) (*TimelineView, error)

	// CommitEdit applies one window rewrite, cascades it through the
	// dependency graph, and persists every resulting record change in a
	// single transaction.
	CommitEdit(ctx context.Context, projectID, itemID string, start, end time.Time) (timeline.CommitSet, error)

	// Link creates a finish-to-start edge and immediately re-validates
	// the target against the source's current end.
	Link(ctx context.Context, projectID, fromID, toID string) (timeline.CommitSet, error)
	Unlink(ctx context.Context, projectID, fromID, toID string) error

	// SetRentalOffset rewrites one stage rental slot's business-day
	// offset. Rental moves never cascade.
	SetRentalOffset(ctx context.Context, stageID string, slot, offsetDays int) error

	// MoveUp and MoveDown permute the persisted display order.
	MoveUp(ctx context.Context, projectID, itemID string) error
	MoveDown(ctx context.Context, projectID, itemID string) error
}

// ImportResult holds the outcome of a project import.
type ImportResult struct {
	Project         *domain.Project
	SupplierCount   int
	StageCount      int
	TaskCount       int
	TransportCount  int
	DependencyCount int
}

type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
}
