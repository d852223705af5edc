package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/db"
	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/repository"
	"github.com/finestedm/procalc/internal/timeline"
	"github.com/google/uuid"
)

type timelineService struct {
	projects   repository.ProjectRepo
	suppliers  repository.SupplierRepo
	stages     repository.StageRepo
	tasks      repository.TaskRepo
	transports repository.TransportRepo
	deps       repository.DependencyRepo
	order      repository.DisplayOrderRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewTimelineService(
	projects repository.ProjectRepo,
	suppliers repository.SupplierRepo,
	stages repository.StageRepo,
	tasks repository.TaskRepo,
	transports repository.TransportRepo,
	deps repository.DependencyRepo,
	order repository.DisplayOrderRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TimelineService {
	return &timelineService{
		projects:   projects,
		suppliers:  suppliers,
		stages:     stages,
		tasks:      tasks,
		transports: transports,
		deps:       deps,
		order:      order,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *timelineService) Load(ctx context.Context, projectID string) (*TimelineView, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	items, deps, err := s.buildItems(ctx, project)
	if err != nil {
		return nil, err
	}

	orderIDs, err := s.order.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ordering := timeline.NewOrdering(orderIDs)
	ordering.Sync(items)

	return &TimelineView{
		Project:      project,
		Items:        ordering.Apply(items),
		Dependencies: deps,
	}, nil
}

func (s *timelineService) CommitEdit(ctx context.Context, projectID, itemID string, start, end time.Time) (timeline.CommitSet, error) {
	started := time.Now()
	set, err := s.commitEdit(ctx, projectID, itemID, start, end)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "timeline_commit_edit",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields: map[string]any{
			"project_id": projectID,
			"item_id":    itemID,
			"stages":     len(set.Stages),
			"tasks":      len(set.Tasks),
			"suppliers":  len(set.Suppliers),
		},
	})
	return set, err
}

func (s *timelineService) commitEdit(ctx context.Context, projectID, itemID string, start, end time.Time) (timeline.CommitSet, error) {
	if end.Before(start) {
		return timeline.CommitSet{}, fmt.Errorf("window end precedes start")
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return timeline.CommitSet{}, err
	}
	items, deps, err := s.buildItems(ctx, project)
	if err != nil {
		return timeline.CommitSet{}, err
	}
	if !containsItem(items, itemID) {
		return timeline.CommitSet{}, fmt.Errorf("item %s not on timeline", itemID)
	}

	prop := timeline.NewPropagator(items, deps)
	updates := prop.Run(map[string]timeline.Update{
		itemID: {Start: start, End: end},
	})
	set := timeline.TranslateUpdates(items, updates)
	if set.Empty() {
		return set, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return writeCommitSet(ctx, tx, set)
	})
	if err != nil {
		return timeline.CommitSet{}, err
	}
	return set, nil
}

func (s *timelineService) Link(ctx context.Context, projectID, fromID, toID string) (timeline.CommitSet, error) {
	started := time.Now()
	set, err := s.link(ctx, projectID, fromID, toID)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "timeline_link",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields: map[string]any{
			"project_id": projectID,
			"from_id":    fromID,
			"to_id":      toID,
		},
	})
	return set, err
}

func (s *timelineService) link(ctx context.Context, projectID, fromID, toID string) (timeline.CommitSet, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return timeline.CommitSet{}, err
	}
	items, deps, err := s.buildItems(ctx, project)
	if err != nil {
		return timeline.CommitSet{}, err
	}
	if !timeline.CanConnect(items, deps, fromID, toID) {
		return timeline.CommitSet{}, fmt.Errorf("cannot connect %s to %s", fromID, toID)
	}

	dep := domain.Dependency{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		FromID:    fromID,
		ToID:      toID,
		Kind:      domain.FinishToStart,
		CreatedAt: time.Now().UTC(),
	}

	// Propagate over the graph as it will look with the new edge, so a
	// target already violating the constraint is pushed right away.
	prop := timeline.NewPropagator(items, append(deps, dep))
	set := timeline.TranslateUpdates(items, prop.RunFrom(fromID))

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteDependencyRepo(tx).Create(ctx, &dep); err != nil {
			return err
		}
		return writeCommitSet(ctx, tx, set)
	})
	if err != nil {
		return timeline.CommitSet{}, err
	}
	return set, nil
}

func (s *timelineService) Unlink(ctx context.Context, projectID, fromID, toID string) error {
	exists, err := s.deps.Exists(ctx, fromID, toID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no dependency from %s to %s", fromID, toID)
	}
	return s.deps.DeleteByPair(ctx, fromID, toID)
}

func (s *timelineService) SetRentalOffset(ctx context.Context, stageID string, slot, offsetDays int) error {
	if offsetDays < 0 {
		offsetDays = 0
	}
	return s.stages.SetRentalOffset(ctx, stageID, slot, offsetDays)
}

func (s *timelineService) MoveUp(ctx context.Context, projectID, itemID string) error {
	return s.moveOrder(ctx, projectID, itemID, func(o *timeline.Ordering) bool {
		return o.MoveUp(itemID)
	})
}

func (s *timelineService) MoveDown(ctx context.Context, projectID, itemID string) error {
	return s.moveOrder(ctx, projectID, itemID, func(o *timeline.Ordering) bool {
		return o.MoveDown(itemID)
	})
}

func (s *timelineService) moveOrder(ctx context.Context, projectID, itemID string, move func(*timeline.Ordering) bool) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	items, _, err := s.buildItems(ctx, project)
	if err != nil {
		return err
	}
	orderIDs, err := s.order.Get(ctx, projectID)
	if err != nil {
		return err
	}

	ordering := timeline.NewOrdering(orderIDs)
	ordering.Sync(items)
	if !move(ordering) {
		return fmt.Errorf("item %s cannot move further", itemID)
	}
	return s.order.Save(ctx, projectID, ordering.IDs())
}

// buildItems derives the current item list and dependency set for one
// project. Every edit pass rebuilds from records rather than mutating a
// cached chart.
func (s *timelineService) buildItems(ctx context.Context, project *domain.Project) ([]timeline.Item, []domain.Dependency, error) {
	suppliers, err := s.suppliers.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, nil, err
	}
	stages, err := s.stages.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, nil, err
	}
	transports, err := s.transports.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, nil, err
	}
	deps, err := s.deps.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, nil, err
	}

	in := timeline.Input{OrderDate: project.OrderDate}
	for _, sup := range suppliers {
		in.Suppliers = append(in.Suppliers, *sup)
	}
	for _, st := range stages {
		in.Stages = append(in.Stages, *st)
	}
	for _, ct := range tasks {
		in.Tasks = append(in.Tasks, *ct)
	}
	for _, tr := range transports {
		in.Transports = append(in.Transports, *tr)
	}
	return timeline.Build(in), deps, nil
}

// writeCommitSet persists one propagation pass's record changes over
// the given transaction.
func writeCommitSet(ctx context.Context, tx db.DBTX, set timeline.CommitSet) error {
	stageRepo := repository.NewSQLiteStageRepo(tx)
	taskRepo := repository.NewSQLiteTaskRepo(tx)
	supplierRepo := repository.NewSQLiteSupplierRepo(tx)

	for _, sd := range set.Stages {
		if err := stageRepo.SetDates(ctx, sd.ID, sd.Start, sd.End); err != nil {
			return err
		}
	}
	for _, td := range set.Tasks {
		if err := taskRepo.SetDates(ctx, td.ID, td.Start, td.End); err != nil {
			return err
		}
	}
	for _, sup := range set.Suppliers {
		if err := supplierRepo.SetDeliveryDate(ctx, sup.ID, sup.DeliveryDate); err != nil {
			return err
		}
	}
	return nil
}

func containsItem(items []timeline.Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
