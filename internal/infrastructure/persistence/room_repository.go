package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/infrastructure/persistence/models"
)

// GormRoomRepository implements RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID finds a room by its natural number
func (r *GormRoomRepository) FindByID(ctx context.Context, id string) (*property.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds rooms matching the filter
func (r *GormRoomRepository) FindAll(ctx context.Context, filter property.RoomFilter) ([]property.Room, error) {
	var roomModels []models.RoomModel
	query := r.applyFilter(r.db.WithContext(ctx), filter)

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	if err := query.Order("id").Find(&roomModels).Error; err != nil {
		return nil, err
	}

	rooms := make([]property.Room, len(roomModels))
	for i := range roomModels {
		rooms[i] = *roomModels[i].ToDomain()
	}
	return rooms, nil
}

// Count counts rooms matching the filter
func (r *GormRoomRepository) Count(ctx context.Context, filter property.RoomFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RoomModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRoomRepository) applyFilter(query *gorm.DB, filter property.RoomFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("id ILIKE ? OR description ILIKE ?", search, search)
	}
	return query
}

// Save creates or updates a room
func (r *GormRoomRepository) Save(ctx context.Context, room *property.Room) error {
	var model models.RoomModel
	model.FromDomain(room)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a room
func (r *GormRoomRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.RoomModel{}, "id = ?", id).Error
}
