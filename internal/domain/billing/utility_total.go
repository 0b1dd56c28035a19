package billing

import (
	"time"

	"github.com/rental/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UtilityTotal records the building-wide electricity and water consumption
// entered once per month. It caps the sum of all per-room consumption for
// that month.
type UtilityTotal struct {
	shared.BaseEntity
	Month            time.Time // first day of the summarized month
	TotalElectricity decimal.Decimal
	TotalWater       decimal.Decimal
	ElectricityCost  decimal.Decimal
	WaterCost        decimal.Decimal
}

// NewUtilityTotal creates the building-wide total for a month
func NewUtilityTotal(month time.Time, totalElectricity, totalWater, electricityCost, waterCost decimal.Decimal) (*UtilityTotal, error) {
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Summary month is required")
	}
	if totalElectricity.IsNegative() || totalWater.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Building totals cannot be negative")
	}
	if electricityCost.IsNegative() || waterCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Building costs cannot be negative")
	}

	return &UtilityTotal{
		BaseEntity:       shared.NewBaseEntity(),
		Month:            MonthStart(month),
		TotalElectricity: totalElectricity,
		TotalWater:       totalWater,
		ElectricityCost:  electricityCost,
		WaterCost:        waterCost,
	}, nil
}

// Update replaces the totals of an existing month entry
func (ut *UtilityTotal) Update(totalElectricity, totalWater, electricityCost, waterCost decimal.Decimal) error {
	if totalElectricity.IsNegative() || totalWater.IsNegative() {
		return shared.NewDomainError("INVALID_TOTAL", "Building totals cannot be negative")
	}
	if electricityCost.IsNegative() || waterCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Building costs cannot be negative")
	}
	ut.TotalElectricity = totalElectricity
	ut.TotalWater = totalWater
	ut.ElectricityCost = electricityCost
	ut.WaterCost = waterCost
	ut.UpdatedAt = time.Now()
	return nil
}

// AllowsConsumption reports whether the building totals accommodate the
// given summed per-room consumption.
func (ut *UtilityTotal) AllowsConsumption(electricity, water decimal.Decimal) error {
	if electricity.GreaterThan(ut.TotalElectricity) {
		return shared.NewDomainError("EXCEEDS_BUILDING_TOTAL",
			"Total electricity consumption of all rooms would exceed the building-wide total")
	}
	if water.GreaterThan(ut.TotalWater) {
		return shared.NewDomainError("EXCEEDS_BUILDING_TOTAL",
			"Total water consumption of all rooms would exceed the building-wide total")
	}
	return nil
}
