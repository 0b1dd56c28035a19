package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rental/backend/internal/domain/notification"
	"github.com/rental/backend/internal/infrastructure/persistence/models"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns a user's notifications, newest first
func (r *GormNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]notification.Notification, error) {
	var notificationModels []models.NotificationModel
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("status = ?", notification.StatusUnread)
	}
	if err := query.Order("created_at DESC").Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]notification.Notification, len(notificationModels))
	for i := range notificationModels {
		notifications[i] = *notificationModels[i].ToDomain()
	}
	return notifications, nil
}

// CountUnread returns the number of unread notifications for a user
func (r *GormNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND status = ?", userID, notification.StatusUnread).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	var model models.NotificationModel
	model.FromDomain(n)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveAll persists a batch of notifications
func (r *GormNotificationRepository) SaveAll(ctx context.Context, ns []*notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	notificationModels := make([]models.NotificationModel, len(ns))
	for i, n := range ns {
		notificationModels[i].FromDomain(n)
	}
	return r.db.WithContext(ctx).Save(&notificationModels).Error
}
