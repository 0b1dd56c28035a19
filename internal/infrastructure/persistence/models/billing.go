package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rental/backend/internal/domain/billing"
)

// MeterReadingModel is the persistence model for monthly meter readings.
// One row per (room, month).
type MeterReadingModel struct {
	BaseModel
	RoomID           string                `gorm:"type:varchar(20);not null;uniqueIndex:idx_readings_room_month,priority:1"`
	Month            time.Time             `gorm:"not null;uniqueIndex:idx_readings_room_month,priority:2"`
	ElectricityIndex decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	WaterIndex       decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	Status           billing.ReadingStatus `gorm:"type:varchar(20);not null;default:'recorded'"`
}

// TableName returns the table name for GORM
func (MeterReadingModel) TableName() string {
	return "meter_readings"
}

// ToDomain converts the persistence model to a domain MeterReading
func (m *MeterReadingModel) ToDomain() *billing.MeterReading {
	return &billing.MeterReading{
		BaseEntity:       m.BaseModel.ToDomain(),
		RoomID:           m.RoomID,
		Month:            m.Month.UTC(),
		ElectricityIndex: m.ElectricityIndex,
		WaterIndex:       m.WaterIndex,
		Status:           m.Status,
	}
}

// FromDomain populates the persistence model from a domain MeterReading
func (m *MeterReadingModel) FromDomain(mr *billing.MeterReading) {
	m.FromDomainBaseEntity(mr.BaseEntity)
	m.RoomID = mr.RoomID
	m.Month = mr.Month
	m.ElectricityIndex = mr.ElectricityIndex
	m.WaterIndex = mr.WaterIndex
	m.Status = mr.Status
}

// UtilityTotalModel is the persistence model for building-wide utility totals
type UtilityTotalModel struct {
	BaseModel
	Month            time.Time       `gorm:"not null;uniqueIndex"`
	TotalElectricity decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalWater       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	ElectricityCost  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	WaterCost        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (UtilityTotalModel) TableName() string {
	return "utility_totals"
}

// ToDomain converts the persistence model to a domain UtilityTotal
func (m *UtilityTotalModel) ToDomain() *billing.UtilityTotal {
	return &billing.UtilityTotal{
		BaseEntity:       m.BaseModel.ToDomain(),
		Month:            m.Month.UTC(),
		TotalElectricity: m.TotalElectricity,
		TotalWater:       m.TotalWater,
		ElectricityCost:  m.ElectricityCost,
		WaterCost:        m.WaterCost,
	}
}

// FromDomain populates the persistence model from a domain UtilityTotal
func (m *UtilityTotalModel) FromDomain(ut *billing.UtilityTotal) {
	m.FromDomainBaseEntity(ut.BaseEntity)
	m.Month = ut.Month
	m.TotalElectricity = ut.TotalElectricity
	m.TotalWater = ut.TotalWater
	m.ElectricityCost = ut.ElectricityCost
	m.WaterCost = ut.WaterCost
}

// DraftBillModel is the persistence model for the DraftBill aggregate.
// Details are stored as JSONB; exactly one of the two columns is populated
// depending on the draft type.
type DraftBillModel struct {
	AggregateModel
	RoomID        string                        `gorm:"type:varchar(20);not null;uniqueIndex:idx_drafts_room_month_type,priority:1"`
	Month         time.Time                     `gorm:"not null;uniqueIndex:idx_drafts_room_month_type,priority:2"`
	Type          billing.DraftType             `gorm:"type:varchar(20);not null;uniqueIndex:idx_drafts_room_month_type,priority:3"`
	Status        billing.DraftStatus           `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	TotalAmount   decimal.Decimal               `gorm:"type:decimal(18,2);not null"`
	ElectricWater *billing.ElectricWaterDetails `gorm:"type:jsonb"`
	Services      *billing.ServicesDetails      `gorm:"type:jsonb"`
	ConfirmedAt   *time.Time
}

// TableName returns the table name for GORM
func (DraftBillModel) TableName() string {
	return "draft_bills"
}

// ToDomain converts the persistence model to a domain DraftBill
func (m *DraftBillModel) ToDomain() *billing.DraftBill {
	return &billing.DraftBill{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RoomID:            m.RoomID,
		Month:             m.Month.UTC(),
		Type:              m.Type,
		Status:            m.Status,
		TotalAmount:       m.TotalAmount,
		ElectricWater:     m.ElectricWater,
		Services:          m.Services,
		ConfirmedAt:       m.ConfirmedAt,
	}
}

// FromDomain populates the persistence model from a domain DraftBill
func (m *DraftBillModel) FromDomain(d *billing.DraftBill) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.RoomID = d.RoomID
	m.Month = d.Month
	m.Type = d.Type
	m.Status = d.Status
	m.TotalAmount = d.TotalAmount
	m.ElectricWater = d.ElectricWater
	m.Services = d.Services
	m.ConfirmedAt = d.ConfirmedAt
}

// ServiceItemModel is the persistence model for the service catalog
type ServiceItemModel struct {
	BaseModel
	Name        string              `gorm:"type:varchar(100);not null"`
	Description string              `gorm:"type:text"`
	PricingType billing.PricingType `gorm:"type:varchar(20);not null"`
	UnitPrice   decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Active      bool                `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ServiceItemModel) TableName() string {
	return "service_items"
}

// ToDomain converts the persistence model to a domain ServiceItem
func (m *ServiceItemModel) ToDomain() *billing.ServiceItem {
	return &billing.ServiceItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		PricingType: m.PricingType,
		UnitPrice:   m.UnitPrice,
		Active:      m.Active,
	}
}

// FromDomain populates the persistence model from a domain ServiceItem
func (m *ServiceItemModel) FromDomain(s *billing.ServiceItem) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.Description = s.Description
	m.PricingType = s.PricingType
	m.UnitPrice = s.UnitPrice
	m.Active = s.Active
}

// BillModel is the persistence model for the Bill aggregate
type BillModel struct {
	AggregateModel
	RoomID            string                 `gorm:"type:varchar(20);not null;uniqueIndex:idx_bills_room_month,priority:1"`
	Month             time.Time              `gorm:"not null;uniqueIndex:idx_bills_room_month,priority:2"`
	RentAmount        decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	ElectricityAmount decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	WaterAmount       decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	SharedAmount      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	ServiceAmount     decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	TotalAmount       decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Status            billing.BillStatus     `gorm:"type:varchar(20);not null;default:'unpaid';index"`
	DueDate           time.Time              `gorm:"not null;index"`
	PaidAt            *time.Time
	ServiceLines      []BillServiceLineModel `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill
func (m *BillModel) ToDomain() *billing.Bill {
	lines := make([]billing.BillServiceLine, 0, len(m.ServiceLines))
	for i := range m.ServiceLines {
		lines = append(lines, *m.ServiceLines[i].ToDomain())
	}

	return &billing.Bill{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RoomID:            m.RoomID,
		Month:             m.Month.UTC(),
		RentAmount:        m.RentAmount,
		ElectricityAmount: m.ElectricityAmount,
		WaterAmount:       m.WaterAmount,
		SharedAmount:      m.SharedAmount,
		ServiceAmount:     m.ServiceAmount,
		TotalAmount:       m.TotalAmount,
		Status:            m.Status,
		DueDate:           m.DueDate,
		PaidAt:            m.PaidAt,
		ServiceLines:      lines,
	}
}

// FromDomain populates the persistence model from a domain Bill
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.RoomID = b.RoomID
	m.Month = b.Month
	m.RentAmount = b.RentAmount
	m.ElectricityAmount = b.ElectricityAmount
	m.WaterAmount = b.WaterAmount
	m.SharedAmount = b.SharedAmount
	m.ServiceAmount = b.ServiceAmount
	m.TotalAmount = b.TotalAmount
	m.Status = b.Status
	m.DueDate = b.DueDate
	m.PaidAt = b.PaidAt

	m.ServiceLines = make([]BillServiceLineModel, 0, len(b.ServiceLines))
	for i := range b.ServiceLines {
		var line BillServiceLineModel
		line.FromDomain(&b.ServiceLines[i])
		m.ServiceLines = append(m.ServiceLines, line)
	}
}

// BillServiceLineModel is the persistence model for service charges on a bill
type BillServiceLineModel struct {
	BaseModel
	BillID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	ServiceID    string              `gorm:"type:varchar(40);not null"`
	Name         string              `gorm:"type:varchar(100);not null"`
	PricingType  billing.PricingType `gorm:"type:varchar(20);not null"`
	UnitPrice    decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	NumResidents int                 `gorm:"not null;default:0"`
	Cost         decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (BillServiceLineModel) TableName() string {
	return "bill_service_lines"
}

// ToDomain converts the persistence model to a domain BillServiceLine
func (m *BillServiceLineModel) ToDomain() *billing.BillServiceLine {
	return &billing.BillServiceLine{
		BaseEntity:   m.BaseModel.ToDomain(),
		BillID:       m.BillID,
		ServiceID:    m.ServiceID,
		Name:         m.Name,
		PricingType:  m.PricingType,
		UnitPrice:    m.UnitPrice,
		NumResidents: m.NumResidents,
		Cost:         m.Cost,
	}
}

// FromDomain populates the persistence model from a domain BillServiceLine
func (m *BillServiceLineModel) FromDomain(l *billing.BillServiceLine) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.BillID = l.BillID
	m.ServiceID = l.ServiceID
	m.Name = l.Name
	m.PricingType = l.PricingType
	m.UnitPrice = l.UnitPrice
	m.NumResidents = l.NumResidents
	m.Cost = l.Cost
}

// PaymentModel is the persistence model for the Payment aggregate
type PaymentModel struct {
	AggregateModel
	BillID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	Method        billing.PaymentMethod `gorm:"type:varchar(20);not null"`
	Status        billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	OrderCode     int64                 `gorm:"index"`
	TransactionAt *time.Time
	FailureReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BillID:            m.BillID,
		Method:            m.Method,
		Status:            m.Status,
		Amount:            m.Amount,
		OrderCode:         m.OrderCode,
		TransactionAt:     m.TransactionAt,
		FailureReason:     m.FailureReason,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.BillID = p.BillID
	m.Method = p.Method
	m.Status = p.Status
	m.Amount = p.Amount
	m.OrderCode = p.OrderCode
	m.TransactionAt = p.TransactionAt
	m.FailureReason = p.FailureReason
}

// SettingModel is the persistence model for runtime settings
type SettingModel struct {
	BaseModel
	Key         string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Value       string `gorm:"type:varchar(500);not null"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}

// ToDomain converts the persistence model to a domain Setting
func (m *SettingModel) ToDomain() *billing.Setting {
	return &billing.Setting{
		BaseEntity:  m.BaseModel.ToDomain(),
		Key:         m.Key,
		Value:       m.Value,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Setting
func (m *SettingModel) FromDomain(s *billing.Setting) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Key = s.Key
	m.Value = s.Value
	m.Description = s.Description
}
