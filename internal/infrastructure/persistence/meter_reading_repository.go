package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/infrastructure/persistence/models"
)

// GormMeterReadingRepository implements MeterReadingRepository using GORM
type GormMeterReadingRepository struct {
	db *gorm.DB
}

// NewGormMeterReadingRepository creates a new GormMeterReadingRepository
func NewGormMeterReadingRepository(db *gorm.DB) *GormMeterReadingRepository {
	return &GormMeterReadingRepository{db: db}
}

// FindByID finds a reading by ID
func (r *GormMeterReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MeterReading, error) {
	var model models.MeterReadingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRoomAndMonth returns the reading for a room and month, or nil
func (r *GormMeterReadingRepository) FindByRoomAndMonth(ctx context.Context, roomID string, month time.Time) (*billing.MeterReading, error) {
	var model models.MeterReadingModel
	if err := r.db.WithContext(ctx).
		First(&model, "room_id = ? AND month = ?", roomID, billing.MonthStart(month)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestBefore returns the newest reading strictly before the month, or nil
func (r *GormMeterReadingRepository) FindLatestBefore(ctx context.Context, roomID string, month time.Time) (*billing.MeterReading, error) {
	var model models.MeterReadingModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND month < ?", roomID, billing.MonthStart(month)).
		Order("month DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByMonth returns every room's reading for a month
func (r *GormMeterReadingRepository) FindAllByMonth(ctx context.Context, month time.Time) ([]billing.MeterReading, error) {
	var readingModels []models.MeterReadingModel
	if err := r.db.WithContext(ctx).
		Where("month = ?", billing.MonthStart(month)).
		Order("room_id").
		Find(&readingModels).Error; err != nil {
		return nil, err
	}

	readings := make([]billing.MeterReading, len(readingModels))
	for i := range readingModels {
		readings[i] = *readingModels[i].ToDomain()
	}
	return readings, nil
}

// FindAllLatestBefore returns the newest reading strictly before the month
// for every room that has one.
func (r *GormMeterReadingRepository) FindAllLatestBefore(ctx context.Context, month time.Time) (map[string]*billing.MeterReading, error) {
	var readingModels []models.MeterReadingModel
	if err := r.db.WithContext(ctx).
		Where("month < ?", billing.MonthStart(month)).
		Order("room_id, month DESC").
		Find(&readingModels).Error; err != nil {
		return nil, err
	}

	// Rows are ordered newest first within each room; keep the first seen.
	latest := make(map[string]*billing.MeterReading)
	for i := range readingModels {
		if _, seen := latest[readingModels[i].RoomID]; !seen {
			latest[readingModels[i].RoomID] = readingModels[i].ToDomain()
		}
	}
	return latest, nil
}

// Save creates or updates a reading
func (r *GormMeterReadingRepository) Save(ctx context.Context, reading *billing.MeterReading) error {
	var model models.MeterReadingModel
	model.FromDomain(reading)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveWithDraft writes the reading and its repriced draft in one transaction
func (r *GormMeterReadingRepository) SaveWithDraft(ctx context.Context, reading *billing.MeterReading, draft *billing.DraftBill) error {
	var readingModel models.MeterReadingModel
	readingModel.FromDomain(reading)
	var draftModel models.DraftBillModel
	draftModel.FromDomain(draft)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&readingModel).Error; err != nil {
			return err
		}
		return tx.Save(&draftModel).Error
	})
}
