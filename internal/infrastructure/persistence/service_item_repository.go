package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/infrastructure/persistence/models"
)

// GormServiceItemRepository implements ServiceItemRepository using GORM
type GormServiceItemRepository struct {
	db *gorm.DB
}

// NewGormServiceItemRepository creates a new GormServiceItemRepository
func NewGormServiceItemRepository(db *gorm.DB) *GormServiceItemRepository {
	return &GormServiceItemRepository{db: db}
}

// FindByID finds a catalog entry by ID
func (r *GormServiceItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.ServiceItem, error) {
	var model models.ServiceItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns the catalog, optionally only active entries
func (r *GormServiceItemRepository) FindAll(ctx context.Context, activeOnly bool) ([]billing.ServiceItem, error) {
	var itemModels []models.ServiceItemModel
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Order("name").Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]billing.ServiceItem, len(itemModels))
	for i := range itemModels {
		items[i] = *itemModels[i].ToDomain()
	}
	return items, nil
}

// Save creates or updates a catalog entry
func (r *GormServiceItemRepository) Save(ctx context.Context, item *billing.ServiceItem) error {
	var model models.ServiceItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a catalog entry
func (r *GormServiceItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ServiceItemModel{}, "id = ?", id).Error
}
