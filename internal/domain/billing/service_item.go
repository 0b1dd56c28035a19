package billing

import (
	"github.com/rental/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PricingType controls how an ad hoc service is charged
type PricingType string

const (
	PricingPerRoom   PricingType = "PER_ROOM"   // flat charge per room
	PricingPerPerson PricingType = "PER_PERSON" // unit price times residents
)

// IsValid checks if the pricing type is known
func (t PricingType) IsValid() bool {
	return t == PricingPerRoom || t == PricingPerPerson
}

// String returns the string representation of PricingType
func (t PricingType) String() string {
	return string(t)
}

// ServiceItem is a catalog entry for an ad hoc service (cleaning, parking,
// laundry and the like) that managers attach to monthly drafts.
type ServiceItem struct {
	shared.BaseEntity
	Name        string
	Description string
	PricingType PricingType
	UnitPrice   decimal.Decimal
	Active      bool
}

// NewServiceItem creates a catalog entry
func NewServiceItem(name, description string, pricingType PricingType, unitPrice decimal.Decimal) (*ServiceItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE_NAME", "Service name cannot be empty")
	}
	if !pricingType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRICING_TYPE", "Unknown pricing type")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}

	return &ServiceItem{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		PricingType: pricingType,
		UnitPrice:   unitPrice,
		Active:      true,
	}, nil
}

// Update changes the catalog entry. Price changes never reprice drafts that
// already captured a line.
func (s *ServiceItem) Update(name, description string, pricingType PricingType, unitPrice decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_SERVICE_NAME", "Service name cannot be empty")
	}
	if !pricingType.IsValid() {
		return shared.NewDomainError("INVALID_PRICING_TYPE", "Unknown pricing type")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}

	s.Name = name
	s.Description = description
	s.PricingType = pricingType
	s.UnitPrice = unitPrice
	return nil
}

// Deactivate hides the entry from new drafts without touching history
func (s *ServiceItem) Deactivate() {
	s.Active = false
}
