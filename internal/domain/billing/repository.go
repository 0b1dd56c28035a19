package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BillFilter narrows bill listing queries
type BillFilter struct {
	RoomID   string
	Month    *time.Time
	Status   *BillStatus
	Page     int
	PageSize int
}

// MeterReadingRepository manages monthly meter readings
type MeterReadingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MeterReading, error)
	// FindByRoomAndMonth returns the reading for a room and month, or nil
	FindByRoomAndMonth(ctx context.Context, roomID string, month time.Time) (*MeterReading, error)
	// FindLatestBefore returns the newest reading strictly before the month, or nil
	FindLatestBefore(ctx context.Context, roomID string, month time.Time) (*MeterReading, error)
	// FindAllByMonth returns every room's reading for a month
	FindAllByMonth(ctx context.Context, month time.Time) ([]MeterReading, error)
	// FindAllLatestBefore returns the newest reading strictly before the month for every room
	FindAllLatestBefore(ctx context.Context, month time.Time) (map[string]*MeterReading, error)
	Save(ctx context.Context, reading *MeterReading) error
	// SaveWithDraft persists a reading and its repriced ELECTRIC_WATER
	// draft atomically, so a failed draft write never leaves an orphaned
	// reading behind.
	SaveWithDraft(ctx context.Context, reading *MeterReading, draft *DraftBill) error
}

// UtilityTotalRepository manages whole-building utility records
type UtilityTotalRepository interface {
	// FindByMonth returns the building total for a month, or nil
	FindByMonth(ctx context.Context, month time.Time) (*UtilityTotal, error)
	FindAll(ctx context.Context) ([]UtilityTotal, error)
	Save(ctx context.Context, total *UtilityTotal) error
}

// DraftBillRepository manages provisional monthly charges
type DraftBillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DraftBill, error)
	// FindByRoomMonthType returns the unique draft for a key, or nil
	FindByRoomMonthType(ctx context.Context, roomID string, month time.Time, draftType DraftType) (*DraftBill, error)
	// FindByRoomAndMonth returns both drafts of a room's month
	FindByRoomAndMonth(ctx context.Context, roomID string, month time.Time) ([]DraftBill, error)
	// FindByMonth returns all drafts of a month, optionally filtered by type
	FindByMonth(ctx context.Context, month time.Time, draftType *DraftType) ([]DraftBill, error)
	Save(ctx context.Context, draft *DraftBill) error
}

// ServiceItemRepository manages the ad hoc service catalog
type ServiceItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceItem, error)
	FindAll(ctx context.Context, activeOnly bool) ([]ServiceItem, error)
	Save(ctx context.Context, item *ServiceItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BillRepository manages final bills
type BillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	// FindByRoomAndMonth returns the bill for a room and month, or nil
	FindByRoomAndMonth(ctx context.Context, roomID string, month time.Time) (*Bill, error)
	FindAll(ctx context.Context, filter BillFilter) ([]Bill, error)
	Count(ctx context.Context, filter BillFilter) (int64, error)
	// FindUnpaidPastDue returns unpaid bills whose due date is before now
	FindUnpaidPastDue(ctx context.Context, now time.Time) ([]Bill, error)
	Save(ctx context.Context, bill *Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository manages settlement attempts
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	// FindByOrderCode returns the gateway payment for an order code, or nil
	FindByOrderCode(ctx context.Context, orderCode int64) (*Payment, error)
	FindByBill(ctx context.Context, billID uuid.UUID) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
}

// SettingRepository manages runtime configuration values
type SettingRepository interface {
	// FindByKey returns the setting, or nil when unset
	FindByKey(ctx context.Context, key string) (*Setting, error)
	FindAll(ctx context.Context) ([]Setting, error)
	Save(ctx context.Context, setting *Setting) error
}
