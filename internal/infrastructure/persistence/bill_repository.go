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

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by ID with its service lines
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Preload("ServiceLines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRoomAndMonth returns the bill for a room and month, or nil
func (r *GormBillRepository) FindByRoomAndMonth(ctx context.Context, roomID string, month time.Time) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Preload("ServiceLines").
		First(&model, "room_id = ? AND month = ?", roomID, billing.MonthStart(month)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds bills matching the filter
func (r *GormBillRepository) FindAll(ctx context.Context, filter billing.BillFilter) ([]billing.Bill, error) {
	var billModels []models.BillModel
	query := r.applyFilter(r.db.WithContext(ctx), filter)

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	if err := query.Preload("ServiceLines").
		Order("month DESC, room_id").
		Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]billing.Bill, len(billModels))
	for i := range billModels {
		bills[i] = *billModels[i].ToDomain()
	}
	return bills, nil
}

// Count counts bills matching the filter
func (r *GormBillRepository) Count(ctx context.Context, filter billing.BillFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBillRepository) applyFilter(query *gorm.DB, filter billing.BillFilter) *gorm.DB {
	if filter.RoomID != "" {
		query = query.Where("room_id = ?", filter.RoomID)
	}
	if filter.Month != nil {
		query = query.Where("month = ?", billing.MonthStart(*filter.Month))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// FindUnpaidPastDue returns unpaid bills whose due date is before now
func (r *GormBillRepository) FindUnpaidPastDue(ctx context.Context, now time.Time) ([]billing.Bill, error) {
	var billModels []models.BillModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", billing.BillStatusUnpaid, now).
		Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]billing.Bill, len(billModels))
	for i := range billModels {
		bills[i] = *billModels[i].ToDomain()
	}
	return bills, nil
}

// Save creates or updates a bill. Service lines are replaced wholesale so
// regeneration never leaves stale charges behind.
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	var model models.BillModel
	model.FromDomain(bill)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.BillServiceLineModel{}, "bill_id = ?", bill.ID).Error; err != nil {
			return err
		}
		return tx.Save(&model).Error
	})
}

// Delete removes a bill and its service lines
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PaymentModel{}, "bill_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.BillServiceLineModel{}, "bill_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BillModel{}, "id = ?", id).Error
	})
}
