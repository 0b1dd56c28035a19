package billing

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/rental/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ElectricWaterDetails is the priced breakdown stored inside an
// ELECTRIC_WATER draft. Amounts are computed once at creation and kept
// alongside the draft so a later price change never reprices history.
type ElectricWaterDetails struct {
	OldElectricityIndex    decimal.Decimal `json:"old_electricity_index"`
	NewElectricityIndex    decimal.Decimal `json:"new_electricity_index"`
	ElectricityConsumption decimal.Decimal `json:"electricity_consumption"`
	ElectricityUnitPrice   decimal.Decimal `json:"electricity_unit_price"`
	ElectricityCost        decimal.Decimal `json:"electricity_cost"`
	OldWaterIndex          decimal.Decimal `json:"old_water_index"`
	NewWaterIndex          decimal.Decimal `json:"new_water_index"`
	WaterConsumption       decimal.Decimal `json:"water_consumption"`
	WaterUnitPrice         decimal.Decimal `json:"water_unit_price"`
	WaterCost              decimal.Decimal `json:"water_cost"`
}

// Validate checks internal consistency of the utility breakdown
func (d ElectricWaterDetails) Validate() error {
	if d.NewElectricityIndex.LessThan(d.OldElectricityIndex) {
		return shared.NewDomainError("INDEX_REGRESSION", "New electricity index is below the previous one")
	}
	if d.NewWaterIndex.LessThan(d.OldWaterIndex) {
		return shared.NewDomainError("INDEX_REGRESSION", "New water index is below the previous one")
	}
	if d.ElectricityUnitPrice.IsNegative() || d.WaterUnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_PRICE", "Unit prices cannot be negative")
	}
	return nil
}

// TotalCost returns electricity cost plus water cost
func (d ElectricWaterDetails) TotalCost() decimal.Decimal {
	return d.ElectricityCost.Add(d.WaterCost)
}

// PriceElectricWater builds a priced breakdown from consumption and the
// current unit prices.
func PriceElectricWater(prev, current *MeterReading, electricityPrice, waterPrice decimal.Decimal) (ElectricWaterDetails, error) {
	electricity, water, err := current.ConsumptionSince(prev)
	if err != nil {
		return ElectricWaterDetails{}, err
	}

	details := ElectricWaterDetails{
		NewElectricityIndex:    current.ElectricityIndex,
		ElectricityConsumption: electricity,
		ElectricityUnitPrice:   electricityPrice,
		ElectricityCost:        electricity.Mul(electricityPrice),
		NewWaterIndex:          current.WaterIndex,
		WaterConsumption:       water,
		WaterUnitPrice:         waterPrice,
		WaterCost:              water.Mul(waterPrice),
	}
	if prev != nil {
		details.OldElectricityIndex = prev.ElectricityIndex
		details.OldWaterIndex = prev.WaterIndex
	}
	return details, nil
}

// ServiceLine is one service charge on a SERVICES draft
type ServiceLine struct {
	ServiceID    string          `json:"service_id"`
	Name         string          `json:"name"`
	PricingType  PricingType     `json:"pricing_type"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	NumResidents int             `json:"num_residents,omitempty"` // only set for PER_PERSON
	Cost         decimal.Decimal `json:"cost"`
}

// Validate checks the line carries a usable price
func (l ServiceLine) Validate() error {
	if l.ServiceID == "" {
		return shared.NewDomainError("INVALID_SERVICE", "Service ID cannot be empty")
	}
	if !l.PricingType.IsValid() {
		return shared.NewDomainError("INVALID_PRICING_TYPE", "Unknown pricing type")
	}
	if l.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}
	if l.PricingType == PricingPerPerson && l.NumResidents < 0 {
		return shared.NewDomainError("INVALID_RESIDENT_COUNT", "Resident count cannot be negative")
	}
	return nil
}

// NewServiceLine prices a line from the catalog item. PER_PERSON lines
// multiply the unit price by the distinct residents of the month; a month
// with no residents prices to zero.
func NewServiceLine(item *ServiceItem, numResidents int) (ServiceLine, error) {
	line := ServiceLine{
		ServiceID:   item.ID.String(),
		Name:        item.Name,
		PricingType: item.PricingType,
		UnitPrice:   item.UnitPrice,
	}
	switch item.PricingType {
	case PricingPerRoom:
		line.Cost = item.UnitPrice
	case PricingPerPerson:
		line.NumResidents = numResidents
		line.Cost = item.UnitPrice.Mul(decimal.NewFromInt(int64(numResidents)))
	}
	if err := line.Validate(); err != nil {
		return ServiceLine{}, err
	}
	return line, nil
}

// ServicesDetails is the list of service charges stored inside a SERVICES
// draft.
type ServicesDetails struct {
	Services []ServiceLine `json:"services"`
}

// HasService reports whether a catalog item already appears on the draft
func (d ServicesDetails) HasService(serviceID string) bool {
	for _, line := range d.Services {
		if line.ServiceID == serviceID {
			return true
		}
	}
	return false
}

// TotalCost sums all line costs
func (d ServicesDetails) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, line := range d.Services {
		total = total.Add(line.Cost)
	}
	return total
}

// Value implements driver.Valuer for JSONB storage
func (d ElectricWaterDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage
func (d *ElectricWaterDetails) Scan(value interface{}) error {
	if value == nil {
		*d = ElectricWaterDetails{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into ElectricWaterDetails", value)
	}
}

// Value implements driver.Valuer for JSONB storage
func (d ServicesDetails) Value() (driver.Value, error) {
	if d.Services == nil {
		return "{\"services\":[]}", nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage
func (d *ServicesDetails) Scan(value interface{}) error {
	if value == nil {
		*d = ServicesDetails{Services: []ServiceLine{}}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into ServicesDetails", value)
	}
}
