package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/rental/backend/internal/domain/shared"
)

// RoomResident records one stay of a user in a room.
// An open stay has a nil MoveOutDate.
type RoomResident struct {
	shared.BaseEntity
	RoomID      string
	UserID      uuid.UUID
	MoveInDate  time.Time
	MoveOutDate *time.Time
}

// NewRoomResident opens a new stay starting at moveIn
func NewRoomResident(roomID string, userID uuid.UUID, moveIn time.Time) (*RoomResident, error) {
	if roomID == "" {
		return nil, shared.NewDomainError("INVALID_ROOM_ID", "Room ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if moveIn.IsZero() {
		moveIn = time.Now()
	}

	return &RoomResident{
		BaseEntity: shared.NewBaseEntity(),
		RoomID:     roomID,
		UserID:     userID,
		MoveInDate: moveIn,
	}, nil
}

// IsOpen returns true while the resident still lives in the room
func (rr *RoomResident) IsOpen() bool {
	return rr.MoveOutDate == nil
}

// Close ends the stay at moveOut
func (rr *RoomResident) Close(moveOut time.Time) error {
	if !rr.IsOpen() {
		return shared.NewDomainError("STAY_CLOSED", "Stay has already been closed")
	}
	if moveOut.Before(rr.MoveInDate) {
		return shared.NewDomainError("INVALID_MOVE_OUT", "Move-out date cannot precede move-in date")
	}
	rr.MoveOutDate = &moveOut
	rr.UpdatedAt = time.Now()
	return nil
}

// OccupiedDuring reports whether the stay overlaps the billing month
// [monthStart, nextMonthStart). A stay counts when the resident moved in
// before the next month starts and had not moved out before the month began.
func (rr *RoomResident) OccupiedDuring(monthStart, nextMonthStart time.Time) bool {
	if !rr.MoveInDate.Before(nextMonthStart) {
		return false
	}
	if rr.MoveOutDate == nil {
		return true
	}
	return !rr.MoveOutDate.Before(monthStart)
}

// DistinctOccupants returns the number of distinct users among the given
// stays that overlap the billing month. A user who moved out and back in
// within the same month is counted once.
func DistinctOccupants(stays []RoomResident, monthStart, nextMonthStart time.Time) int {
	seen := make(map[uuid.UUID]struct{})
	for i := range stays {
		if stays[i].OccupiedDuring(monthStart, nextMonthStart) {
			seen[stays[i].UserID] = struct{}{}
		}
	}
	return len(seen)
}
