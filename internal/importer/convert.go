package importer

import (
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/google/uuid"
)

// GeneratedProject holds the domain records produced from one import
// schema, ready for persistence in a single transaction.
type GeneratedProject struct {
	Project      *domain.Project
	Suppliers    []*domain.Supplier
	Stages       []*domain.InstallationStage
	Tasks        []*domain.CustomTask
	Transports   []*domain.TransportGroup
	Dependencies []domain.Dependency
}

// Convert transforms a validated ImportSchema into domain records.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*GeneratedProject, error) {
	now := time.Now().UTC()

	orderDate, ok := domain.ParseDate(schema.Project.OrderDate)
	if !ok {
		return nil, fmt.Errorf("parsing order_date %q", schema.Project.OrderDate)
	}

	project := &domain.Project{
		ID:           uuid.New().String(),
		Name:         schema.Project.Name,
		Status:       domain.ProjectActive,
		OrderDate:    orderDate,
		ProtocolDate: parseOptionalDate(schema.Project.ProtocolDate),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	refMap := make(map[string]string) // ref -> UUID

	suppliers := make([]*domain.Supplier, 0, len(schema.Suppliers))
	for _, si := range schema.Suppliers {
		realID := uuid.New().String()
		refMap[si.Ref] = realID

		sup := &domain.Supplier{
			ID:           realID,
			ProjectID:    project.ID,
			Name:         si.Name,
			DeliveryDate: si.DeliveryDate,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, li := range si.LineItems {
			sup.LineItems = append(sup.LineItems, domain.LineItem{
				ID:          uuid.New().String(),
				Name:        li.Name,
				Quantity:    li.Quantity,
				UnitMinutes: li.UnitMinutes,
				Excluded:    li.Excluded,
			})
		}
		suppliers = append(suppliers, sup)
	}

	stages := make([]*domain.InstallationStage, 0, len(schema.Stages))
	for _, sti := range schema.Stages {
		realID := uuid.New().String()
		refMap[sti.Ref] = realID

		// Defaults cascade: stage field > schema defaults > hardcoded.
		calcMethod := domain.CoalesceStr(sti.CalcMethod, defaultCalcMethod(schema.Defaults), string(domain.CalcTime))
		workDayHours := domain.Float64FromPtrWithDefault(8,
			sti.WorkDayHours, defaultWorkDayHours(schema.Defaults))
		installerCount := domain.IntFromPtrWithDefault(2,
			sti.InstallerCount, defaultInstallerCount(schema.Defaults))

		st := &domain.InstallationStage{
			ID:                realID,
			ProjectID:         project.ID,
			Name:              sti.Name,
			Seq:               sti.Seq,
			CalcMethod:        domain.CalcMethod(calcMethod),
			StartDate:         parseOptionalDate(sti.StartDate),
			EndDate:           parseOptionalDate(sti.EndDate),
			WorkDayHours:      workDayHours,
			InstallerCount:    installerCount,
			ManualLaborHours:  sti.ManualLaborHours,
			PalletSpots:       sti.PalletSpots,
			PalletSpotsPerDay: sti.PalletSpotsPerDay,
			Excluded:          sti.Excluded,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		for _, ref := range sti.SupplierRefs {
			if id, ok := refMap[ref]; ok {
				st.LinkedSupplierIDs = append(st.LinkedSupplierIDs, id)
			}
		}
		for i, r := range sti.Rentals {
			if i >= domain.StageRentalSlots {
				break
			}
			st.Rentals[i] = domain.RentalConfig{
				Resource:   domain.RentalResource(r.Resource),
				OffsetDays: r.OffsetDays,
				Days:       r.Days,
			}
		}
		stages = append(stages, st)
	}

	tasks := make([]*domain.CustomTask, 0, len(schema.Tasks))
	for _, ti := range schema.Tasks {
		realID := uuid.New().String()
		refMap[ti.Ref] = realID
		tasks = append(tasks, &domain.CustomTask{
			ID:        realID,
			ProjectID: project.ID,
			Name:      ti.Name,
			StartDate: parseOptionalDate(ti.StartDate),
			EndDate:   parseOptionalDate(ti.EndDate),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	transports := make([]*domain.TransportGroup, 0, len(schema.Transports))
	for _, tri := range schema.Transports {
		realID := uuid.New().String()
		refMap[tri.Ref] = realID

		tr := &domain.TransportGroup{
			ID:        realID,
			ProjectID: project.ID,
			Name:      tri.Name,
			Expanded:  tri.Expanded,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, ref := range tri.SupplierRefs {
			if id, ok := refMap[ref]; ok {
				tr.LinkedSupplierIDs = append(tr.LinkedSupplierIDs, id)
			}
		}
		transports = append(transports, tr)
	}

	deps := make([]domain.Dependency, 0, len(schema.Dependencies))
	for _, di := range schema.Dependencies {
		fromID, okFrom := refMap[di.PredecessorRef]
		toID, okTo := refMap[di.SuccessorRef]
		if !okFrom || !okTo {
			return nil, fmt.Errorf("dependency %q -> %q references unknown ref", di.PredecessorRef, di.SuccessorRef)
		}
		deps = append(deps, domain.Dependency{
			ID:        uuid.New().String(),
			ProjectID: project.ID,
			FromID:    fromID,
			ToID:      toID,
			Kind:      domain.FinishToStart,
			CreatedAt: now,
		})
	}

	return &GeneratedProject{
		Project:      project,
		Suppliers:    suppliers,
		Stages:       stages,
		Tasks:        tasks,
		Transports:   transports,
		Dependencies: deps,
	}, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, ok := domain.ParseDate(*s)
	if !ok {
		return nil
	}
	return &t
}

func defaultCalcMethod(d *DefaultsImport) string {
	if d == nil {
		return ""
	}
	return d.CalcMethod
}

func defaultWorkDayHours(d *DefaultsImport) *float64 {
	if d == nil {
		return nil
	}
	return d.WorkDayHours
}

func defaultInstallerCount(d *DefaultsImport) *int {
	if d == nil {
		return nil
	}
	return d.InstallerCount
}
