package property

import (
	"time"

	"github.com/rental/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RoomStatus represents the occupancy status of a room
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"   // Has capacity for new residents
	RoomStatusOccupied    RoomStatus = "occupied"    // At least one open stay
	RoomStatusMaintenance RoomStatus = "maintenance" // Temporarily withdrawn
	RoomStatusUnavailable RoomStatus = "unavailable" // Not rentable
)

// IsValid checks if the status is a known RoomStatus
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusUnavailable:
		return true
	}
	return false
}

// String returns the string representation of RoomStatus
func (s RoomStatus) String() string {
	return string(s)
}

// AcceptsResidents returns true if new residents may be assigned in this status
func (s RoomStatus) AcceptsResidents() bool {
	return s == RoomStatusAvailable || s == RoomStatusOccupied
}

// DefaultMaxOccupants is applied when a room is created without an explicit limit
const DefaultMaxOccupants = 5

// Room represents a rentable unit, identified by its natural number (e.g. "P101")
type Room struct {
	ID           string
	Area         decimal.Decimal
	Description  string
	Status       RoomStatus
	MaxOccupants int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewRoom creates a room in the available state
func NewRoom(id string, area decimal.Decimal, description string, maxOccupants int) (*Room, error) {
	if id == "" {
		return nil, shared.NewDomainError("INVALID_ROOM_ID", "Room ID cannot be empty")
	}
	if len(id) > 20 {
		return nil, shared.NewDomainError("INVALID_ROOM_ID", "Room ID cannot exceed 20 characters")
	}
	if area.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AREA", "Room area cannot be negative")
	}
	if maxOccupants <= 0 {
		maxOccupants = DefaultMaxOccupants
	}

	return &Room{
		ID:           id,
		Area:         area,
		Description:  description,
		Status:       RoomStatusAvailable,
		MaxOccupants: maxOccupants,
	}, nil
}

// HasCapacity returns true if one more resident fits given the current open-stay count
func (r *Room) HasCapacity(currentOccupants int) bool {
	return currentOccupants < r.MaxOccupants
}

// CanAssign validates that a new resident may move in given the current occupancy
func (r *Room) CanAssign(currentOccupants int) error {
	if !r.Status.AcceptsResidents() {
		return shared.ErrRoomUnavailable
	}
	if !r.HasCapacity(currentOccupants) {
		return shared.ErrRoomFull
	}
	return nil
}

// MarkOccupied flips the room to occupied
func (r *Room) MarkOccupied() {
	r.Status = RoomStatusOccupied
}

// MarkAvailable flips the room back to available (last resident left)
func (r *Room) MarkAvailable() {
	r.Status = RoomStatusAvailable
}

// SetStatus sets an explicit status (maintenance, unavailable)
func (r *Room) SetStatus(status RoomStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown room status")
	}
	r.Status = status
	return nil
}
