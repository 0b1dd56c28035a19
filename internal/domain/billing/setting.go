package billing

import (
	"fmt"

	"github.com/rental/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Setting keys used by the billing flows
const (
	SettingElectricityUnitPrice = "ELECTRICITY_UNIT_PRICE"
	SettingWaterUnitPrice       = "WATER_UNIT_PRICE"
	SettingCommonAreaUtilityFee = "COMMON_AREA_UTILITY_FEE"
)

// Setting is a named configuration value managers adjust at runtime.
// Values are stored as strings; billing keys hold decimal amounts.
type Setting struct {
	shared.BaseEntity
	Key         string
	Value       string
	Description string
}

// NewSetting creates a setting
func NewSetting(key, value, description string) (*Setting, error) {
	if key == "" {
		return nil, shared.NewDomainError("INVALID_SETTING_KEY", "Setting key cannot be empty")
	}

	return &Setting{
		BaseEntity:  shared.NewBaseEntity(),
		Key:         key,
		Value:       value,
		Description: description,
	}, nil
}

// UpdateValue replaces the stored value
func (s *Setting) UpdateValue(value string) {
	s.Value = value
}

// DecimalValue parses the value as a decimal amount
func (s *Setting) DecimalValue() (decimal.Decimal, error) {
	v, err := decimal.NewFromString(s.Value)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_SETTING_VALUE",
			fmt.Sprintf("Setting %s is not a valid amount", s.Key))
	}
	return v, nil
}
