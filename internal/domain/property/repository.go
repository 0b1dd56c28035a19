package property

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoomFilter narrows room listing queries
type RoomFilter struct {
	Status   *RoomStatus
	Search   string
	Page     int
	PageSize int
}

// RoomRepository manages Room persistence
type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*Room, error)
	FindAll(ctx context.Context, filter RoomFilter) ([]Room, error)
	Count(ctx context.Context, filter RoomFilter) (int64, error)
	Save(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
}

// RoomResidentRepository manages resident stay records
type RoomResidentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomResident, error)
	// FindOpenByUser returns the user's current stay, or nil
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*RoomResident, error)
	// FindOpenByRoom returns all open stays for a room
	FindOpenByRoom(ctx context.Context, roomID string) ([]RoomResident, error)
	// CountOpenByRoom returns the number of residents currently in a room
	CountOpenByRoom(ctx context.Context, roomID string) (int64, error)
	// FindByRoomOverlapping returns all stays of a room overlapping [monthStart, nextMonthStart)
	FindByRoomOverlapping(ctx context.Context, roomID string, monthStart, nextMonthStart time.Time) ([]RoomResident, error)
	// FindHistoryByUser returns all stays of a user, newest move-in first
	FindHistoryByUser(ctx context.Context, userID uuid.UUID) ([]RoomResident, error)
	Save(ctx context.Context, stay *RoomResident) error
}

// RentalPriceRepository manages a room's price history
type RentalPriceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RentalPrice, error)
	// FindByRoom returns the full history for a room, newest effective date first
	FindByRoom(ctx context.Context, roomID string) ([]RentalPrice, error)
	// FindInEffect returns the price applicable at the target date, or nil
	FindInEffect(ctx context.Context, roomID string, target time.Time) (*RentalPrice, error)
	Save(ctx context.Context, price *RentalPrice) error
	Delete(ctx context.Context, id uuid.UUID) error
}
