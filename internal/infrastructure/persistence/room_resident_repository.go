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

// GormRoomResidentRepository implements RoomResidentRepository using GORM
type GormRoomResidentRepository struct {
	db *gorm.DB
}

// NewGormRoomResidentRepository creates a new GormRoomResidentRepository
func NewGormRoomResidentRepository(db *gorm.DB) *GormRoomResidentRepository {
	return &GormRoomResidentRepository{db: db}
}

// FindByID finds a stay by ID
func (r *GormRoomResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.RoomResident, error) {
	var model models.RoomResidentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByUser returns the user's current stay, or nil
func (r *GormRoomResidentRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*property.RoomResident, error) {
	var model models.RoomResidentModel
	if err := r.db.WithContext(ctx).
		First(&model, "user_id = ? AND move_out_date IS NULL", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByRoom returns all open stays for a room
func (r *GormRoomResidentRepository) FindOpenByRoom(ctx context.Context, roomID string) ([]property.RoomResident, error) {
	var stayModels []models.RoomResidentModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND move_out_date IS NULL", roomID).
		Order("move_in_date").
		Find(&stayModels).Error; err != nil {
		return nil, err
	}
	return toDomainStays(stayModels), nil
}

// CountOpenByRoom returns the number of residents currently in a room
func (r *GormRoomResidentRepository) CountOpenByRoom(ctx context.Context, roomID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RoomResidentModel{}).
		Where("room_id = ? AND move_out_date IS NULL", roomID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByRoomOverlapping returns all stays of a room overlapping the month
func (r *GormRoomResidentRepository) FindByRoomOverlapping(ctx context.Context, roomID string, monthStart, nextMonthStart time.Time) ([]property.RoomResident, error) {
	var stayModels []models.RoomResidentModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND move_in_date < ? AND (move_out_date IS NULL OR move_out_date >= ?)",
			roomID, nextMonthStart, monthStart).
		Find(&stayModels).Error; err != nil {
		return nil, err
	}
	return toDomainStays(stayModels), nil
}

// FindHistoryByUser returns all stays of a user, newest move-in first
func (r *GormRoomResidentRepository) FindHistoryByUser(ctx context.Context, userID uuid.UUID) ([]property.RoomResident, error) {
	var stayModels []models.RoomResidentModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("move_in_date DESC").
		Find(&stayModels).Error; err != nil {
		return nil, err
	}
	return toDomainStays(stayModels), nil
}

// Save creates or updates a stay
func (r *GormRoomResidentRepository) Save(ctx context.Context, stay *property.RoomResident) error {
	var model models.RoomResidentModel
	model.FromDomain(stay)
	return r.db.WithContext(ctx).Save(&model).Error
}

func toDomainStays(stayModels []models.RoomResidentModel) []property.RoomResident {
	stays := make([]property.RoomResident, len(stayModels))
	for i := range stayModels {
		stays[i] = *stayModels[i].ToDomain()
	}
	return stays
}
