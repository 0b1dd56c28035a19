package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rental/backend/internal/domain/billing"
)

// RecordReadingInput contains the input for recording a meter reading
type RecordReadingInput struct {
	RoomID           string
	Month            time.Time
	ElectricityIndex decimal.Decimal
	WaterIndex       decimal.Decimal
}

// ReadingInfo describes a recorded meter reading
type ReadingInfo struct {
	ID               uuid.UUID
	RoomID           string
	Month            time.Time
	ElectricityIndex decimal.Decimal
	WaterIndex       decimal.Decimal
	Status           billing.ReadingStatus
}

// UpsertUtilityTotalInput contains the input for the monthly building totals
type UpsertUtilityTotalInput struct {
	Month            time.Time
	TotalElectricity decimal.Decimal
	TotalWater       decimal.Decimal
	ElectricityCost  decimal.Decimal
	WaterCost        decimal.Decimal
}

// AddServiceToDraftInput contains the input for adding a catalog service
// to a room's monthly services draft
type AddServiceToDraftInput struct {
	RoomID    string
	Month     time.Time
	ServiceID uuid.UUID
}

// RemoveServiceFromDraftInput contains the input for dropping a service line
type RemoveServiceFromDraftInput struct {
	DraftID   uuid.UUID
	ServiceID string
}

// TransitionDraftInput contains the input for a draft status change
type TransitionDraftInput struct {
	DraftID uuid.UUID
	Target  billing.DraftStatus
	// ActorUserID and ActorIsManager scope what transitions are allowed:
	// residents may only confirm or reject SENT drafts of their own room.
	ActorUserID    uuid.UUID
	ActorIsManager bool
}

// DraftInfo describes a draft bill with its typed details
type DraftInfo struct {
	ID            uuid.UUID
	RoomID        string
	Month         time.Time
	Type          billing.DraftType
	Status        billing.DraftStatus
	TotalAmount   decimal.Decimal
	ElectricWater *billing.ElectricWaterDetails
	Services      *billing.ServicesDetails
	ConfirmedAt   *time.Time
}

// GenerateBillInput contains the input for single-room bill generation
type GenerateBillInput struct {
	RoomID string
	Month  time.Time
}

// GenerateMonthResult reports the outcome of batch bill generation
type GenerateMonthResult struct {
	Month        time.Time
	Generated    int
	SkippedRooms []string
}

// BillInfo describes a final bill
type BillInfo struct {
	ID                uuid.UUID
	RoomID            string
	Month             time.Time
	RentAmount        decimal.Decimal
	ElectricityAmount decimal.Decimal
	WaterAmount       decimal.Decimal
	SharedAmount      decimal.Decimal
	ServiceAmount     decimal.Decimal
	TotalAmount       decimal.Decimal
	Status            billing.BillStatus
	DueDate           time.Time
	PaidAt            *time.Time
	ServiceLines      []billing.BillServiceLine
}

// ListBillsResult contains a page of bills
type ListBillsResult struct {
	Bills    []BillInfo
	Total    int64
	Page     int
	PageSize int
}

// ConfirmCashPaymentInput contains the input for a manager cash confirmation
type ConfirmCashPaymentInput struct {
	BillID uuid.UUID
}

// CashPaymentResult reports a cash confirmation. AlreadyPaid signals the
// warning no-op case.
type CashPaymentResult struct {
	PaymentID   uuid.UUID
	BillID      uuid.UUID
	Amount      decimal.Decimal
	AlreadyPaid bool
}

// CreatePaymentLinkInput contains the input for a bank-transfer checkout
type CreatePaymentLinkInput struct {
	BillID uuid.UUID
}

// PaymentLinkResult carries the hosted checkout the resident is sent to
type PaymentLinkResult struct {
	PaymentID   uuid.UUID
	OrderCode   int64
	CheckoutURL string
	QRCode      string
	Amount      decimal.Decimal
}

// WebhookResult reports how a gateway callback was handled
type WebhookResult struct {
	OrderCode        int64
	PaymentStatus    billing.PaymentStatus
	BillPaid         bool
	AlreadyProcessed bool
}

// ServiceItemInput contains the input for catalog item create/update
type ServiceItemInput struct {
	Name        string
	Description string
	PricingType billing.PricingType
	UnitPrice   decimal.Decimal
}

// UpdateSettingInput contains the input for a settings change
type UpdateSettingInput struct {
	Key   string
	Value string
}

func toDraftInfo(d *billing.DraftBill) DraftInfo {
	return DraftInfo{
		ID:            d.ID,
		RoomID:        d.RoomID,
		Month:         d.Month,
		Type:          d.Type,
		Status:        d.Status,
		TotalAmount:   d.TotalAmount,
		ElectricWater: d.ElectricWater,
		Services:      d.Services,
		ConfirmedAt:   d.ConfirmedAt,
	}
}

func toBillInfo(b *billing.Bill) BillInfo {
	return BillInfo{
		ID:                b.ID,
		RoomID:            b.RoomID,
		Month:             b.Month,
		RentAmount:        b.RentAmount,
		ElectricityAmount: b.ElectricityAmount,
		WaterAmount:       b.WaterAmount,
		SharedAmount:      b.SharedAmount,
		ServiceAmount:     b.ServiceAmount,
		TotalAmount:       b.TotalAmount,
		Status:            b.Status,
		DueDate:           b.DueDate,
		PaidAt:            b.PaidAt,
		ServiceLines:      b.ServiceLines,
	}
}

func toReadingInfo(r *billing.MeterReading) ReadingInfo {
	return ReadingInfo{
		ID:               r.ID,
		RoomID:           r.RoomID,
		Month:            r.Month,
		ElectricityIndex: r.ElectricityIndex,
		WaterIndex:       r.WaterIndex,
		Status:           r.Status,
	}
}
