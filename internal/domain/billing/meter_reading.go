package billing

import (
	"time"

	"github.com/rental/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReadingStatus represents the lifecycle of a monthly meter reading
type ReadingStatus string

const (
	ReadingStatusPending   ReadingStatus = "pending"
	ReadingStatusRecorded  ReadingStatus = "recorded"
	ReadingStatusConfirmed ReadingStatus = "confirmed"
	ReadingStatusRejected  ReadingStatus = "rejected"
)

// IsValid checks if the status is a known ReadingStatus
func (s ReadingStatus) IsValid() bool {
	switch s {
	case ReadingStatusPending, ReadingStatusRecorded, ReadingStatusConfirmed, ReadingStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ReadingStatus
func (s ReadingStatus) String() string {
	return string(s)
}

// MeterReading holds a room's electricity and water indexes for one billing
// month. One reading exists per (room, month); re-recording replaces it.
type MeterReading struct {
	shared.BaseEntity
	RoomID           string
	Month            time.Time // first day of the billing month
	ElectricityIndex decimal.Decimal
	WaterIndex       decimal.Decimal
	Status           ReadingStatus
}

// NewMeterReading records indexes for a room and month
func NewMeterReading(roomID string, month time.Time, electricityIndex, waterIndex decimal.Decimal) (*MeterReading, error) {
	if roomID == "" {
		return nil, shared.NewDomainError("INVALID_ROOM_ID", "Room ID cannot be empty")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Billing month is required")
	}
	if electricityIndex.IsNegative() || waterIndex.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INDEX", "Meter indexes cannot be negative")
	}

	return &MeterReading{
		BaseEntity:       shared.NewBaseEntity(),
		RoomID:           roomID,
		Month:            MonthStart(month),
		ElectricityIndex: electricityIndex,
		WaterIndex:       waterIndex,
		Status:           ReadingStatusRecorded,
	}, nil
}

// Record replaces the indexes of an existing reading
func (mr *MeterReading) Record(electricityIndex, waterIndex decimal.Decimal) error {
	if electricityIndex.IsNegative() || waterIndex.IsNegative() {
		return shared.NewDomainError("INVALID_INDEX", "Meter indexes cannot be negative")
	}
	mr.ElectricityIndex = electricityIndex
	mr.WaterIndex = waterIndex
	mr.Status = ReadingStatusRecorded
	mr.UpdatedAt = time.Now()
	return nil
}

// ConsumptionSince returns the electricity and water consumed since the
// previous month's reading. A nil previous reading means the meters started
// at zero.
func (mr *MeterReading) ConsumptionSince(prev *MeterReading) (electricity, water decimal.Decimal, err error) {
	prevElectric := decimal.Zero
	prevWater := decimal.Zero
	if prev != nil {
		prevElectric = prev.ElectricityIndex
		prevWater = prev.WaterIndex
	}
	if mr.ElectricityIndex.LessThan(prevElectric) {
		return decimal.Zero, decimal.Zero, shared.NewDomainError("INDEX_REGRESSION",
			"New electricity index cannot be lower than the previous month's")
	}
	if mr.WaterIndex.LessThan(prevWater) {
		return decimal.Zero, decimal.Zero, shared.NewDomainError("INDEX_REGRESSION",
			"New water index cannot be lower than the previous month's")
	}
	return mr.ElectricityIndex.Sub(prevElectric), mr.WaterIndex.Sub(prevWater), nil
}
