package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/infrastructure/persistence/models"
)

// GormSettingRepository implements SettingRepository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindByKey returns the setting, or nil when unset
func (r *GormSettingRepository) FindByKey(ctx context.Context, key string) (*billing.Setting, error) {
	var model models.SettingModel
	if err := r.db.WithContext(ctx).First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all settings ordered by key
func (r *GormSettingRepository) FindAll(ctx context.Context) ([]billing.Setting, error) {
	var settingModels []models.SettingModel
	if err := r.db.WithContext(ctx).Order("key").Find(&settingModels).Error; err != nil {
		return nil, err
	}

	settings := make([]billing.Setting, len(settingModels))
	for i := range settingModels {
		settings[i] = *settingModels[i].ToDomain()
	}
	return settings, nil
}

// Save creates or updates a setting
func (r *GormSettingRepository) Save(ctx context.Context, setting *billing.Setting) error {
	var model models.SettingModel
	model.FromDomain(setting)
	return r.db.WithContext(ctx).Save(&model).Error
}
