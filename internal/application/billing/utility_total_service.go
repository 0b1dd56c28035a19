package billing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/billing"
)

// UtilityTotalService manages the building-wide monthly utility records
type UtilityTotalService struct {
	totalRepo billing.UtilityTotalRepository
	logger    *zap.Logger
}

// NewUtilityTotalService creates a new UtilityTotalService
func NewUtilityTotalService(totalRepo billing.UtilityTotalRepository, logger *zap.Logger) *UtilityTotalService {
	return &UtilityTotalService{totalRepo: totalRepo, logger: logger}
}

// Upsert creates or replaces the totals for a month
func (s *UtilityTotalService) Upsert(ctx context.Context, input UpsertUtilityTotalInput) (*billing.UtilityTotal, error) {
	month := billing.MonthStart(input.Month)

	total, err := s.totalRepo.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	if total == nil {
		total, err = billing.NewUtilityTotal(month, input.TotalElectricity, input.TotalWater, input.ElectricityCost, input.WaterCost)
		if err != nil {
			return nil, err
		}
	} else if err := total.Update(input.TotalElectricity, input.TotalWater, input.ElectricityCost, input.WaterCost); err != nil {
		return nil, err
	}

	if err := s.totalRepo.Save(ctx, total); err != nil {
		return nil, err
	}

	s.logger.Info("Building utility totals recorded",
		zap.String("month", month.Format("2006-01")),
		zap.String("total_electricity", total.TotalElectricity.String()),
		zap.String("total_water", total.TotalWater.String()),
	)
	return total, nil
}

// GetByMonth returns the totals for a month, or nil
func (s *UtilityTotalService) GetByMonth(ctx context.Context, month time.Time) (*billing.UtilityTotal, error) {
	return s.totalRepo.FindByMonth(ctx, billing.MonthStart(month))
}

// List returns every recorded month
func (s *UtilityTotalService) List(ctx context.Context) ([]billing.UtilityTotal, error) {
	return s.totalRepo.FindAll(ctx)
}
