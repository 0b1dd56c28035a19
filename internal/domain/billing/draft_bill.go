package billing

import (
	"fmt"
	"time"

	"github.com/rental/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DraftType distinguishes the two provisional charge computations produced
// for every room and month.
type DraftType string

const (
	DraftTypeElectricWater DraftType = "ELECTRIC_WATER"
	DraftTypeServices      DraftType = "SERVICES"
)

// IsValid checks if the draft type is a known DraftType
func (t DraftType) IsValid() bool {
	return t == DraftTypeElectricWater || t == DraftTypeServices
}

// String returns the string representation of DraftType
func (t DraftType) String() string {
	return string(t)
}

// DraftStatus represents the confirmation state of a draft bill
type DraftStatus string

const (
	DraftStatusDraft     DraftStatus = "DRAFT"     // Being assembled by the manager
	DraftStatusSent      DraftStatus = "SENT"      // Sent to the resident for review
	DraftStatusConfirmed DraftStatus = "CONFIRMED" // Accepted; eligible for finalization
	DraftStatusRejected  DraftStatus = "REJECTED"  // Disputed; may be corrected and resent
)

// IsValid checks if the status is a known DraftStatus
func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftStatusDraft, DraftStatusSent, DraftStatusConfirmed, DraftStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of DraftStatus
func (s DraftStatus) String() string {
	return string(s)
}

// CanTransitionTo is the single transition guard for draft statuses.
// Allowed moves: DRAFT→SENT, SENT→CONFIRMED, SENT→REJECTED, REJECTED→SENT.
func (s DraftStatus) CanTransitionTo(target DraftStatus) bool {
	switch s {
	case DraftStatusDraft:
		return target == DraftStatusSent
	case DraftStatusSent:
		return target == DraftStatusConfirmed || target == DraftStatusRejected
	case DraftStatusRejected:
		return target == DraftStatusSent
	}
	return false
}

// IsEditable returns true while draft contents may still change
func (s DraftStatus) IsEditable() bool {
	return s == DraftStatusDraft || s == DraftStatusSent || s == DraftStatusRejected
}

// DraftBill is a provisional monthly charge for one room, one month, and one
// draft type. At most one draft exists per (room, month, type).
type DraftBill struct {
	shared.BaseAggregateRoot
	RoomID      string
	Month       time.Time // first day of the billing month
	Type        DraftType
	Status      DraftStatus
	TotalAmount decimal.Decimal
	// Exactly one of the two detail structs is set, matching Type.
	ElectricWater *ElectricWaterDetails
	Services      *ServicesDetails
	ConfirmedAt   *time.Time
}

// NewElectricWaterDraft creates an electric/water draft already priced from
// a meter reading. The original flow sends these to the resident immediately.
func NewElectricWaterDraft(roomID string, month time.Time, details ElectricWaterDetails) (*DraftBill, error) {
	if roomID == "" {
		return nil, shared.NewDomainError("INVALID_ROOM_ID", "Room ID cannot be empty")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Billing month is required")
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	return &DraftBill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomID:            roomID,
		Month:             MonthStart(month),
		Type:              DraftTypeElectricWater,
		Status:            DraftStatusSent,
		TotalAmount:       details.TotalCost(),
		ElectricWater:     &details,
	}, nil
}

// NewServicesDraft creates an empty services draft in DRAFT status
func NewServicesDraft(roomID string, month time.Time) (*DraftBill, error) {
	if roomID == "" {
		return nil, shared.NewDomainError("INVALID_ROOM_ID", "Room ID cannot be empty")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Billing month is required")
	}

	return &DraftBill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomID:            roomID,
		Month:             MonthStart(month),
		Type:              DraftTypeServices,
		Status:            DraftStatusDraft,
		TotalAmount:       decimal.Zero,
		Services:          &ServicesDetails{Services: []ServiceLine{}},
	}, nil
}

// TransitionTo moves the draft to a new status, enforcing the transition
// graph. Entering CONFIRMED stamps ConfirmedAt.
func (d *DraftBill) TransitionTo(target DraftStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown draft status")
	}
	if !d.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot move draft from %s to %s", d.Status, target))
	}

	now := time.Now()
	d.Status = target
	if target == DraftStatusConfirmed {
		d.ConfirmedAt = &now
	}
	d.UpdatedAt = now
	d.IncrementVersion()
	return nil
}

// RepriceElectricWater replaces the utility details after a corrected meter
// reading. Confirmed drafts must be rejected (disputed) before repricing.
func (d *DraftBill) RepriceElectricWater(details ElectricWaterDetails) error {
	if d.Type != DraftTypeElectricWater {
		return shared.NewDomainError("WRONG_DRAFT_TYPE", "Draft does not carry utility details")
	}
	if !d.Status.IsEditable() {
		return shared.NewDomainError("INVALID_STATE", "Confirmed drafts cannot be repriced")
	}
	if err := details.Validate(); err != nil {
		return err
	}

	d.ElectricWater = &details
	d.TotalAmount = details.TotalCost()
	d.Status = DraftStatusSent
	d.ConfirmedAt = nil
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// AddServiceLine appends a service charge to a services draft and recomputes
// the total. PER_ROOM services may appear once; PER_PERSON services may
// appear once as well, priced by the resident count captured in the line.
func (d *DraftBill) AddServiceLine(line ServiceLine) error {
	if d.Type != DraftTypeServices {
		return shared.NewDomainError("WRONG_DRAFT_TYPE", "Draft does not carry service details")
	}
	if !d.Status.IsEditable() {
		return shared.NewDomainError("INVALID_STATE", "Confirmed drafts cannot be modified")
	}
	if err := line.Validate(); err != nil {
		return err
	}
	if d.Services.HasService(line.ServiceID) {
		return shared.NewDomainError("SERVICE_ALREADY_ADDED",
			fmt.Sprintf("Service %q is already on this draft", line.Name))
	}

	d.Services.Services = append(d.Services.Services, line)
	d.TotalAmount = d.Services.TotalCost()
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// RemoveServiceLine drops a service charge and recomputes the total
func (d *DraftBill) RemoveServiceLine(serviceID string) error {
	if d.Type != DraftTypeServices {
		return shared.NewDomainError("WRONG_DRAFT_TYPE", "Draft does not carry service details")
	}
	if !d.Status.IsEditable() {
		return shared.NewDomainError("INVALID_STATE", "Confirmed drafts cannot be modified")
	}
	if !d.Services.HasService(serviceID) {
		return shared.NewDomainError("SERVICE_NOT_ON_DRAFT", "Service is not on this draft")
	}

	kept := d.Services.Services[:0]
	for _, line := range d.Services.Services {
		if line.ServiceID != serviceID {
			kept = append(kept, line)
		}
	}
	d.Services.Services = kept
	d.TotalAmount = d.Services.TotalCost()
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// IsConfirmed returns true once the draft has been accepted
func (d *DraftBill) IsConfirmed() bool {
	return d.Status == DraftStatusConfirmed
}
