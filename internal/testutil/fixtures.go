package testutil

import (
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithOrderDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.OrderDate = d
	}
}

func WithProtocolDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.ProtocolDate = &d
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ProjectActive,
		OrderDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Supplier options
type SupplierOption func(*domain.Supplier)

func WithDeliveryDate(raw string) SupplierOption {
	return func(s *domain.Supplier) {
		s.DeliveryDate = raw
	}
}

func WithLineItem(name string, quantity int, unitMinutes float64) SupplierOption {
	return func(s *domain.Supplier) {
		s.LineItems = append(s.LineItems, domain.LineItem{
			ID:          uuid.New().String(),
			Name:        name,
			Quantity:    quantity,
			UnitMinutes: unitMinutes,
		})
	}
}

func NewTestSupplier(projectID, name string, opts ...SupplierOption) *domain.Supplier {
	now := time.Now().UTC()
	s := &domain.Supplier{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stage options
type StageOption func(*domain.InstallationStage)

func WithSeq(seq int) StageOption {
	return func(st *domain.InstallationStage) {
		st.Seq = seq
	}
}

func WithCalcMethod(m domain.CalcMethod) StageOption {
	return func(st *domain.InstallationStage) {
		st.CalcMethod = m
	}
}

func WithStageDates(start, end time.Time) StageOption {
	return func(st *domain.InstallationStage) {
		st.StartDate = &start
		st.EndDate = &end
	}
}

func WithLinkedSuppliers(ids ...string) StageOption {
	return func(st *domain.InstallationStage) {
		st.LinkedSupplierIDs = ids
	}
}

func WithPalletInputs(spots, spotsPerDay float64) StageOption {
	return func(st *domain.InstallationStage) {
		st.PalletSpots = spots
		st.PalletSpotsPerDay = spotsPerDay
	}
}

func WithRental(slot int, resource domain.RentalResource, offsetDays, days int) StageOption {
	return func(st *domain.InstallationStage) {
		st.Rentals[slot] = domain.RentalConfig{
			Resource:   resource,
			OffsetDays: offsetDays,
			Days:       days,
		}
	}
}

func NewTestStage(projectID, name string, opts ...StageOption) *domain.InstallationStage {
	now := time.Now().UTC()
	st := &domain.InstallationStage{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		Name:           name,
		CalcMethod:     domain.CalcTime,
		WorkDayHours:   8,
		InstallerCount: 2,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Custom task options
type TaskOption func(*domain.CustomTask)

func WithTaskDates(start, end time.Time) TaskOption {
	return func(ct *domain.CustomTask) {
		ct.StartDate = &start
		ct.EndDate = &end
	}
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.CustomTask {
	now := time.Now().UTC()
	ct := &domain.CustomTask{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(ct)
	}
	return ct
}

// Transport group options
type TransportOption func(*domain.TransportGroup)

func WithTransportSuppliers(ids ...string) TransportOption {
	return func(tr *domain.TransportGroup) {
		tr.LinkedSupplierIDs = ids
	}
}

func WithExpanded(expanded bool) TransportOption {
	return func(tr *domain.TransportGroup) {
		tr.Expanded = expanded
	}
}

func NewTestTransport(projectID, name string, opts ...TransportOption) *domain.TransportGroup {
	now := time.Now().UTC()
	tr := &domain.TransportGroup{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

func NewTestDependency(projectID, fromID, toID string) *domain.Dependency {
	return &domain.Dependency{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		FromID:    fromID,
		ToID:      toID,
		Kind:      domain.FinishToStart,
		CreatedAt: time.Now().UTC(),
	}
}
