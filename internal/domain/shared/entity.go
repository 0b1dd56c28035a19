package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides the surrogate key and timestamps shared by all
// uuid-keyed entities. Rooms are the exception: they keep their natural
// room-number ID.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a base entity with a generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
