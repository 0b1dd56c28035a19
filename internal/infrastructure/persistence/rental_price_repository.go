package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/infrastructure/persistence/models"
)

// GormRentalPriceRepository implements RentalPriceRepository using GORM
type GormRentalPriceRepository struct {
	db *gorm.DB
}

// NewGormRentalPriceRepository creates a new GormRentalPriceRepository
func NewGormRentalPriceRepository(db *gorm.DB) *GormRentalPriceRepository {
	return &GormRentalPriceRepository{db: db}
}

// FindByID finds a price entry by ID
func (r *GormRentalPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.RentalPrice, error) {
	var model models.RentalPriceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRoom returns the full history for a room, newest effective date first
func (r *GormRentalPriceRepository) FindByRoom(ctx context.Context, roomID string) ([]property.RentalPrice, error) {
	var priceModels []models.RentalPriceModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("effective_date DESC").
		Find(&priceModels).Error; err != nil {
		return nil, err
	}

	prices := make([]property.RentalPrice, len(priceModels))
	for i := range priceModels {
		prices[i] = *priceModels[i].ToDomain()
	}
	return prices, nil
}

// FindInEffect returns the price applicable at the target date, or nil
func (r *GormRentalPriceRepository) FindInEffect(ctx context.Context, roomID string, target time.Time) (*property.RentalPrice, error) {
	var model models.RentalPriceModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND effective_date <= ?", roomID, target).
		Order("effective_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a price entry
func (r *GormRentalPriceRepository) Save(ctx context.Context, price *property.RentalPrice) error {
	var model models.RentalPriceModel
	model.FromDomain(price)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a price entry
func (r *GormRentalPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.RentalPriceModel{}, "id = ?", id).Error
}
