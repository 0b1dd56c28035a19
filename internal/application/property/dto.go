package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rental/backend/internal/domain/property"
)

// CreateRoomInput contains the input for room creation
type CreateRoomInput struct {
	ID           string
	Area         decimal.Decimal
	Description  string
	MaxOccupants int
}

// UpdateRoomInput contains the input for room updates
type UpdateRoomInput struct {
	ID           string
	Area         decimal.Decimal
	Description  string
	MaxOccupants int
	Status       property.RoomStatus
}

// RoomInfo describes a room together with its current occupancy
type RoomInfo struct {
	ID            string
	Area          decimal.Decimal
	Description   string
	Status        property.RoomStatus
	MaxOccupants  int
	OccupantCount int64
	CurrentPrice  *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListRoomsResult contains a page of rooms
type ListRoomsResult struct {
	Rooms    []RoomInfo
	Total    int64
	Page     int
	PageSize int
}

// AssignResidentInput contains the input for moving a resident into a room
type AssignResidentInput struct {
	RoomID     string
	UserID     uuid.UUID
	MoveInDate time.Time
}

// LeaveRoomInput contains the input for moving a resident out
type LeaveRoomInput struct {
	UserID      uuid.UUID
	MoveOutDate time.Time
}

// StayInfo describes one stay of a resident in a room
type StayInfo struct {
	ID          uuid.UUID
	RoomID      string
	UserID      uuid.UUID
	MoveInDate  time.Time
	MoveOutDate *time.Time
}

// SetRentalPriceInput contains the input for adding a price history entry
type SetRentalPriceInput struct {
	RoomID        string
	Price         decimal.Decimal
	EffectiveDate time.Time
}

// RentalPriceInfo describes one price history entry
type RentalPriceInfo struct {
	ID            uuid.UUID
	RoomID        string
	Price         decimal.Decimal
	EffectiveDate time.Time
	CreatedAt     time.Time
}

func toStayInfo(stay *property.RoomResident) StayInfo {
	return StayInfo{
		ID:          stay.ID,
		RoomID:      stay.RoomID,
		UserID:      stay.UserID,
		MoveInDate:  stay.MoveInDate,
		MoveOutDate: stay.MoveOutDate,
	}
}

func toRentalPriceInfo(price *property.RentalPrice) RentalPriceInfo {
	return RentalPriceInfo{
		ID:            price.ID,
		RoomID:        price.RoomID,
		Price:         price.Price,
		EffectiveDate: price.EffectiveDate,
		CreatedAt:     price.CreatedAt,
	}
}
