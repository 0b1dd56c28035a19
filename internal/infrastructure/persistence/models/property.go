package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rental/backend/internal/domain/property"
)

// RoomModel is the persistence model for the Room aggregate.
// Rooms use their natural number as the primary key.
type RoomModel struct {
	ID           string              `gorm:"type:varchar(20);primary_key"`
	Area         decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Description  string              `gorm:"type:text"`
	Status       property.RoomStatus `gorm:"type:varchar(20);not null;default:'available';index"`
	MaxOccupants int                 `gorm:"not null"`
	CreatedAt    time.Time           `gorm:"not null"`
	UpdatedAt    time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain Room
func (m *RoomModel) ToDomain() *property.Room {
	return &property.Room{
		ID:           m.ID,
		Area:         m.Area,
		Description:  m.Description,
		Status:       m.Status,
		MaxOccupants: m.MaxOccupants,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Room
func (m *RoomModel) FromDomain(r *property.Room) {
	m.ID = r.ID
	m.Area = r.Area
	m.Description = r.Description
	m.Status = r.Status
	m.MaxOccupants = r.MaxOccupants
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}

// RoomResidentModel is the persistence model for resident stays
type RoomResidentModel struct {
	BaseModel
	RoomID      string     `gorm:"type:varchar(20);not null;index"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	MoveInDate  time.Time  `gorm:"not null"`
	MoveOutDate *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (RoomResidentModel) TableName() string {
	return "room_residents"
}

// ToDomain converts the persistence model to a domain RoomResident
func (m *RoomResidentModel) ToDomain() *property.RoomResident {
	return &property.RoomResident{
		BaseEntity:  m.BaseModel.ToDomain(),
		RoomID:      m.RoomID,
		UserID:      m.UserID,
		MoveInDate:  m.MoveInDate,
		MoveOutDate: m.MoveOutDate,
	}
}

// FromDomain populates the persistence model from a domain RoomResident
func (m *RoomResidentModel) FromDomain(rr *property.RoomResident) {
	m.FromDomainBaseEntity(rr.BaseEntity)
	m.RoomID = rr.RoomID
	m.UserID = rr.UserID
	m.MoveInDate = rr.MoveInDate
	m.MoveOutDate = rr.MoveOutDate
}

// RentalPriceModel is the persistence model for a room's price history
type RentalPriceModel struct {
	BaseModel
	RoomID        string          `gorm:"type:varchar(20);not null;index:idx_rental_prices_room_effective"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	EffectiveDate time.Time       `gorm:"not null;index:idx_rental_prices_room_effective"`
}

// TableName returns the table name for GORM
func (RentalPriceModel) TableName() string {
	return "rental_prices"
}

// ToDomain converts the persistence model to a domain RentalPrice
func (m *RentalPriceModel) ToDomain() *property.RentalPrice {
	return &property.RentalPrice{
		BaseEntity:    m.BaseModel.ToDomain(),
		RoomID:        m.RoomID,
		Price:         m.Price,
		EffectiveDate: m.EffectiveDate,
	}
}

// FromDomain populates the persistence model from a domain RentalPrice
func (m *RentalPriceModel) FromDomain(rp *property.RentalPrice) {
	m.FromDomainBaseEntity(rp.BaseEntity)
	m.RoomID = rp.RoomID
	m.Price = rp.Price
	m.EffectiveDate = rp.EffectiveDate
}
