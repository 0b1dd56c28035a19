package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rental/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a bill was settled
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodBankTransfer
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus represents the lifecycle of a payment attempt
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// IsValid checks if the status is a known PaymentStatus
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Payment records one settlement attempt against a bill. Bank transfers go
// through the gateway and carry the millisecond order code used to correlate
// the webhook; cash payments are recorded directly by the manager.
type Payment struct {
	shared.BaseAggregateRoot
	BillID        uuid.UUID
	Method        PaymentMethod
	Status        PaymentStatus
	Amount        decimal.Decimal
	OrderCode     int64 // gateway order code, 0 for cash
	TransactionAt *time.Time
	FailureReason string
}

// NewCashPayment records a manager-confirmed cash settlement
func NewCashPayment(billID uuid.UUID, amount decimal.Decimal, at time.Time) (*Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillID:            billID,
		Method:            PaymentMethodCash,
		Status:            PaymentStatusSuccess,
		Amount:            amount,
		TransactionAt:     &at,
	}, nil
}

// NewBankPayment records a pending gateway payment keyed by order code
func NewBankPayment(billID uuid.UUID, amount decimal.Decimal, orderCode int64) (*Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if orderCode <= 0 {
		return nil, shared.NewDomainError("INVALID_ORDER_CODE", "Order code must be positive")
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillID:            billID,
		Method:            PaymentMethodBankTransfer,
		Status:            PaymentStatusPending,
		Amount:            amount,
		OrderCode:         orderCode,
	}, nil
}

// MarkSuccess completes a pending payment. Completing twice is a no-op so
// webhook retries stay idempotent.
func (p *Payment) MarkSuccess(transactionAt time.Time) error {
	if p.Status == PaymentStatusSuccess {
		return nil
	}
	if p.Status == PaymentStatusFailed {
		return shared.NewDomainError("INVALID_STATE", "Failed payments cannot succeed")
	}

	p.Status = PaymentStatusSuccess
	p.TransactionAt = &transactionAt
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// MarkFailed records a cancelled or declined payment
func (p *Payment) MarkFailed(reason string) error {
	if p.Status == PaymentStatusFailed {
		return nil
	}
	if p.Status == PaymentStatusSuccess {
		return shared.NewDomainError("INVALID_STATE", "Successful payments cannot fail")
	}

	p.Status = PaymentStatusFailed
	p.FailureReason = reason
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
