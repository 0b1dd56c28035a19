package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rental/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillStatus represents the payment state of a final bill
type BillStatus string

const (
	BillStatusUnpaid  BillStatus = "unpaid"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
)

// IsValid checks if the status is a known BillStatus
func (s BillStatus) IsValid() bool {
	return s == BillStatusUnpaid || s == BillStatusPaid || s == BillStatusOverdue
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// BillServiceLine is a service charge snapshot carried onto a final bill
type BillServiceLine struct {
	shared.BaseEntity
	BillID       uuid.UUID
	ServiceID    string
	Name         string
	PricingType  PricingType
	UnitPrice    decimal.Decimal
	NumResidents int
	Cost         decimal.Decimal
}

// UtilityCharges groups a bill's utility components, kept separate so the
// invoice can itemize metered electricity, metered water, and the room's
// share of common-area consumption.
type UtilityCharges struct {
	Electricity decimal.Decimal
	Water       decimal.Decimal
	Shared      decimal.Decimal
}

// Validate rejects negative components
func (u UtilityCharges) Validate() error {
	if u.Electricity.IsNegative() || u.Water.IsNegative() || u.Shared.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Utility amounts cannot be negative")
	}
	return nil
}

// Total sums the three utility components
func (u UtilityCharges) Total() decimal.Decimal {
	return u.Electricity.Add(u.Water).Add(u.Shared)
}

// Bill is the final invoice for one room and month: rent in effect plus the
// itemized utility draft amounts plus the services draft total.
type Bill struct {
	shared.BaseAggregateRoot
	RoomID            string
	Month             time.Time
	RentAmount        decimal.Decimal
	ElectricityAmount decimal.Decimal
	WaterAmount       decimal.Decimal
	SharedAmount      decimal.Decimal
	ServiceAmount     decimal.Decimal
	TotalAmount       decimal.Decimal
	Status            BillStatus
	DueDate           time.Time
	PaidAt            *time.Time
	ServiceLines      []BillServiceLine
}

// NewBill assembles a final bill. Due date is the 15th of the following
// month; status always starts unpaid, even when regenerating over a paid
// bill.
func NewBill(roomID string, month time.Time, rent decimal.Decimal, utilities UtilityCharges, lines []ServiceLine) (*Bill, error) {
	if roomID == "" {
		return nil, shared.NewDomainError("INVALID_ROOM_ID", "Room ID cannot be empty")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Billing month is required")
	}
	if rent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill amounts cannot be negative")
	}
	if err := utilities.Validate(); err != nil {
		return nil, err
	}

	bill := &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomID:            roomID,
		Month:             MonthStart(month),
		RentAmount:        rent,
		ElectricityAmount: utilities.Electricity,
		WaterAmount:       utilities.Water,
		SharedAmount:      utilities.Shared,
		Status:            BillStatusUnpaid,
		DueDate:           DueDate(month),
	}
	bill.ReplaceServiceLines(lines)
	return bill, nil
}

// ReplaceServiceLines swaps the service charges and recomputes totals.
// Regeneration always rebuilds the full line set from the current drafts.
func (b *Bill) ReplaceServiceLines(lines []ServiceLine) {
	b.ServiceLines = make([]BillServiceLine, 0, len(lines))
	serviceTotal := decimal.Zero
	for _, line := range lines {
		b.ServiceLines = append(b.ServiceLines, BillServiceLine{
			BaseEntity:   shared.NewBaseEntity(),
			BillID:       b.ID,
			ServiceID:    line.ServiceID,
			Name:         line.Name,
			PricingType:  line.PricingType,
			UnitPrice:    line.UnitPrice,
			NumResidents: line.NumResidents,
			Cost:         line.Cost,
		})
		serviceTotal = serviceTotal.Add(line.Cost)
	}
	b.ServiceAmount = serviceTotal
	b.recomputeTotal()
}

// Regenerate replaces all amounts from fresh drafts and resets the bill to
// unpaid. Prior payment state does not survive regeneration.
func (b *Bill) Regenerate(rent decimal.Decimal, utilities UtilityCharges, lines []ServiceLine) error {
	if rent.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Bill amounts cannot be negative")
	}
	if err := utilities.Validate(); err != nil {
		return err
	}

	b.RentAmount = rent
	b.ElectricityAmount = utilities.Electricity
	b.WaterAmount = utilities.Water
	b.SharedAmount = utilities.Shared
	b.ReplaceServiceLines(lines)
	b.Status = BillStatusUnpaid
	b.PaidAt = nil
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// MarkPaid records a successful payment. Paying an already paid bill is a
// no-op so repeated confirmations stay idempotent.
func (b *Bill) MarkPaid(at time.Time) error {
	if b.Status == BillStatusPaid {
		return nil
	}

	b.Status = BillStatusPaid
	b.PaidAt = &at
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// MarkOverdue flags an unpaid bill past its due date
func (b *Bill) MarkOverdue(now time.Time) error {
	if b.Status != BillStatusUnpaid {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot mark %s bill overdue", b.Status))
	}
	if !now.After(b.DueDate) {
		return shared.NewDomainError("NOT_YET_DUE", "Bill is not past its due date")
	}

	b.Status = BillStatusOverdue
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// IsPayable returns true while the bill still awaits payment
func (b *Bill) IsPayable() bool {
	return b.Status == BillStatusUnpaid || b.Status == BillStatusOverdue
}

func (b *Bill) recomputeTotal() {
	b.TotalAmount = b.RentAmount.
		Add(b.ElectricityAmount).
		Add(b.WaterAmount).
		Add(b.SharedAmount).
		Add(b.ServiceAmount)
}
