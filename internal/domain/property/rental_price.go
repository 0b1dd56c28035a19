package property

import (
	"time"

	"github.com/rental/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RentalPrice is one entry in a room's price history.
// The price applicable to a billing month is the latest entry whose
// effective date is on or before the month start.
type RentalPrice struct {
	shared.BaseEntity
	RoomID        string
	Price         decimal.Decimal
	EffectiveDate time.Time
}

// NewRentalPrice creates a price entry effective from the given date
func NewRentalPrice(roomID string, price decimal.Decimal, effectiveDate time.Time) (*RentalPrice, error) {
	if roomID == "" {
		return nil, shared.NewDomainError("INVALID_ROOM_ID", "Room ID cannot be empty")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Rental price must be positive")
	}
	if effectiveDate.IsZero() {
		effectiveDate = time.Now()
	}

	return &RentalPrice{
		BaseEntity:    shared.NewBaseEntity(),
		RoomID:        roomID,
		Price:         price,
		EffectiveDate: effectiveDate,
	}, nil
}

// Update changes the price and effective date of an existing entry
func (rp *RentalPrice) Update(price decimal.Decimal, effectiveDate time.Time) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Rental price must be positive")
	}
	if effectiveDate.IsZero() {
		return shared.NewDomainError("INVALID_EFFECTIVE_DATE", "Effective date is required")
	}
	rp.Price = price
	rp.EffectiveDate = effectiveDate
	rp.UpdatedAt = time.Now()
	return nil
}

// PriceInEffect returns the latest price entry effective on or before the
// target date, or nil when no entry applies yet. Entries may be passed in
// any order.
func PriceInEffect(history []RentalPrice, target time.Time) *RentalPrice {
	var applicable *RentalPrice
	for i := range history {
		p := &history[i]
		if p.EffectiveDate.After(target) {
			continue
		}
		if applicable == nil || p.EffectiveDate.After(applicable.EffectiveDate) {
			applicable = p
		}
	}
	return applicable
}
