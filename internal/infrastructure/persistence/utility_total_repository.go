package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/infrastructure/persistence/models"
)

// GormUtilityTotalRepository implements UtilityTotalRepository using GORM
type GormUtilityTotalRepository struct {
	db *gorm.DB
}

// NewGormUtilityTotalRepository creates a new GormUtilityTotalRepository
func NewGormUtilityTotalRepository(db *gorm.DB) *GormUtilityTotalRepository {
	return &GormUtilityTotalRepository{db: db}
}

// FindByMonth returns the building total for a month, or nil
func (r *GormUtilityTotalRepository) FindByMonth(ctx context.Context, month time.Time) (*billing.UtilityTotal, error) {
	var model models.UtilityTotalModel
	if err := r.db.WithContext(ctx).
		First(&model, "month = ?", billing.MonthStart(month)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all building totals, newest month first
func (r *GormUtilityTotalRepository) FindAll(ctx context.Context) ([]billing.UtilityTotal, error) {
	var totalModels []models.UtilityTotalModel
	if err := r.db.WithContext(ctx).
		Order("month DESC").
		Find(&totalModels).Error; err != nil {
		return nil, err
	}

	totals := make([]billing.UtilityTotal, len(totalModels))
	for i := range totalModels {
		totals[i] = *totalModels[i].ToDomain()
	}
	return totals, nil
}

// Save creates or updates a building total
func (r *GormUtilityTotalRepository) Save(ctx context.Context, total *billing.UtilityTotal) error {
	var model models.UtilityTotalModel
	model.FromDomain(total)
	return r.db.WithContext(ctx).Save(&model).Error
}
