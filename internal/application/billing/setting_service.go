package billing

import (
	"context"

	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/domain/shared"
)

// SettingService manages runtime configuration rows
type SettingService struct {
	settingRepo billing.SettingRepository
	logger      *zap.Logger
}

// NewSettingService creates a new SettingService
func NewSettingService(settingRepo billing.SettingRepository, logger *zap.Logger) *SettingService {
	return &SettingService{settingRepo: settingRepo, logger: logger}
}

// List returns all settings
func (s *SettingService) List(ctx context.Context) ([]billing.Setting, error) {
	return s.settingRepo.FindAll(ctx)
}

// Get returns one setting by key
func (s *SettingService) Get(ctx context.Context, key string) (*billing.Setting, error) {
	setting, err := s.settingRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, shared.ErrNotFound
	}
	return setting, nil
}

// Upsert creates or replaces a setting value. Billing keys must parse as
// decimal amounts.
func (s *SettingService) Upsert(ctx context.Context, input UpdateSettingInput) (*billing.Setting, error) {
	setting, err := s.settingRepo.FindByKey(ctx, input.Key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		setting, err = billing.NewSetting(input.Key, input.Value, "")
		if err != nil {
			return nil, err
		}
	} else {
		setting.UpdateValue(input.Value)
	}

	switch input.Key {
	case billing.SettingElectricityUnitPrice, billing.SettingWaterUnitPrice, billing.SettingCommonAreaUtilityFee:
		if _, err := setting.DecimalValue(); err != nil {
			return nil, err
		}
	}

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}

	s.logger.Info("Setting updated", zap.String("key", input.Key))
	return setting, nil
}
