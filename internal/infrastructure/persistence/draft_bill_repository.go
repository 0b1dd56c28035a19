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

// GormDraftBillRepository implements DraftBillRepository using GORM
type GormDraftBillRepository struct {
	db *gorm.DB
}

// NewGormDraftBillRepository creates a new GormDraftBillRepository
func NewGormDraftBillRepository(db *gorm.DB) *GormDraftBillRepository {
	return &GormDraftBillRepository{db: db}
}

// FindByID finds a draft by ID
func (r *GormDraftBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.DraftBill, error) {
	var model models.DraftBillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRoomMonthType returns the unique draft for a key, or nil
func (r *GormDraftBillRepository) FindByRoomMonthType(ctx context.Context, roomID string, month time.Time, draftType billing.DraftType) (*billing.DraftBill, error) {
	var model models.DraftBillModel
	if err := r.db.WithContext(ctx).
		First(&model, "room_id = ? AND month = ? AND type = ?",
			roomID, billing.MonthStart(month), draftType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRoomAndMonth returns both drafts of a room's month
func (r *GormDraftBillRepository) FindByRoomAndMonth(ctx context.Context, roomID string, month time.Time) ([]billing.DraftBill, error) {
	var draftModels []models.DraftBillModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND month = ?", roomID, billing.MonthStart(month)).
		Order("type").
		Find(&draftModels).Error; err != nil {
		return nil, err
	}
	return toDomainDrafts(draftModels), nil
}

// FindByMonth returns all drafts of a month, optionally filtered by type
func (r *GormDraftBillRepository) FindByMonth(ctx context.Context, month time.Time, draftType *billing.DraftType) ([]billing.DraftBill, error) {
	var draftModels []models.DraftBillModel
	query := r.db.WithContext(ctx).Where("month = ?", billing.MonthStart(month))
	if draftType != nil {
		query = query.Where("type = ?", *draftType)
	}
	if err := query.Order("room_id, type").Find(&draftModels).Error; err != nil {
		return nil, err
	}
	return toDomainDrafts(draftModels), nil
}

// Save creates or updates a draft
func (r *GormDraftBillRepository) Save(ctx context.Context, draft *billing.DraftBill) error {
	var model models.DraftBillModel
	model.FromDomain(draft)
	return r.db.WithContext(ctx).Save(&model).Error
}

func toDomainDrafts(draftModels []models.DraftBillModel) []billing.DraftBill {
	drafts := make([]billing.DraftBill, len(draftModels))
	for i := range draftModels {
		drafts[i] = *draftModels[i].ToDomain()
	}
	return drafts
}
