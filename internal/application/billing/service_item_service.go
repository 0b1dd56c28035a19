package billing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/domain/shared"
)

// ServiceItemService manages the ad hoc service catalog
type ServiceItemService struct {
	itemRepo billing.ServiceItemRepository
	logger   *zap.Logger
}

// NewServiceItemService creates a new ServiceItemService
func NewServiceItemService(itemRepo billing.ServiceItemRepository, logger *zap.Logger) *ServiceItemService {
	return &ServiceItemService{itemRepo: itemRepo, logger: logger}
}

// CreateItem adds a catalog entry
func (s *ServiceItemService) CreateItem(ctx context.Context, input ServiceItemInput) (*billing.ServiceItem, error) {
	item, err := billing.NewServiceItem(input.Name, input.Description, input.PricingType, input.UnitPrice)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("Service item created",
		zap.String("name", item.Name),
		zap.String("pricing_type", item.PricingType.String()),
	)
	return item, nil
}

// GetItem returns a catalog entry
func (s *ServiceItemService) GetItem(ctx context.Context, id uuid.UUID) (*billing.ServiceItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

// ListItems returns the catalog, optionally only active entries
func (s *ServiceItemService) ListItems(ctx context.Context, activeOnly bool) ([]billing.ServiceItem, error) {
	return s.itemRepo.FindAll(ctx, activeOnly)
}

// UpdateItem changes a catalog entry. Drafts already carrying the old price
// keep it; lines snapshot their price at add time.
func (s *ServiceItemService) UpdateItem(ctx context.Context, id uuid.UUID, input ServiceItemInput) (*billing.ServiceItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.ErrNotFound
	}

	if err := item.Update(input.Name, input.Description, input.PricingType, input.UnitPrice); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeactivateItem retires a catalog entry from new drafts
func (s *ServiceItemService) DeactivateItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return shared.ErrNotFound
	}

	item.Deactivate()
	return s.itemRepo.Save(ctx, item)
}
