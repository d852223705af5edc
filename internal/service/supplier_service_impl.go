package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finestedm/procalc/internal/domain"
	"github.com/finestedm/procalc/internal/repository"
	"github.com/google/uuid"
)

type supplierService struct {
	suppliers repository.SupplierRepo
}

func NewSupplierService(suppliers repository.SupplierRepo) SupplierService {
	return &supplierService{suppliers: suppliers}
}

func (s *supplierService) Create(ctx context.Context, sup *domain.Supplier) error {
	if sup.Name == "" {
		return fmt.Errorf("supplier name is required")
	}
	if err := validateDeliveryDate(sup.DeliveryDate); err != nil {
		return err
	}
	if sup.ID == "" {
		sup.ID = uuid.New().String()
	}
	for i := range sup.LineItems {
		if sup.LineItems[i].ID == "" {
			sup.LineItems[i].ID = uuid.New().String()
		}
	}
	now := time.Now().UTC()
	sup.CreatedAt = now
	sup.UpdatedAt = now
	return s.suppliers.Create(ctx, sup)
}

func (s *supplierService) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	return s.suppliers.GetByID(ctx, id)
}

func (s *supplierService) ListByProject(ctx context.Context, projectID string) ([]*domain.Supplier, error) {
	return s.suppliers.ListByProject(ctx, projectID)
}

func (s *supplierService) Update(ctx context.Context, sup *domain.Supplier) error {
	if err := validateDeliveryDate(sup.DeliveryDate); err != nil {
		return err
	}
	for i := range sup.LineItems {
		if sup.LineItems[i].ID == "" {
			sup.LineItems[i].ID = uuid.New().String()
		}
	}
	sup.UpdatedAt = time.Now().UTC()
	return s.suppliers.Update(ctx, sup)
}

func (s *supplierService) Delete(ctx context.Context, id string) error {
	return s.suppliers.Delete(ctx, id)
}

// validateDeliveryDate accepts empty, the ASAP sentinel, or a parseable
// YYYY-MM-DD string. Anything else is a user typo worth rejecting at
// entry even though the builder would tolerate it.
func validateDeliveryDate(raw string) error {
	if raw == "" || raw == domain.DeliveryASAP {
		return nil
	}
	if _, ok := domain.ParseDate(raw); !ok {
		return fmt.Errorf("delivery date %q is not YYYY-MM-DD or %s", raw, domain.DeliveryASAP)
	}
	return nil
}
