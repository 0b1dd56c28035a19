package billing

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Payment gateway errors
var (
	ErrGatewayNotConfigured   = errors.New("payment: gateway not configured")
	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")
	ErrGatewayInvalidCallback = errors.New("payment: invalid callback signature")
	ErrGatewayInvalidAmount   = errors.New("payment: invalid payment amount")
)

// CreatePaymentLinkRequest asks the gateway for a hosted checkout page
type CreatePaymentLinkRequest struct {
	OrderCode   int64
	Amount      decimal.Decimal
	Description string
	ReturnURL   string
	CancelURL   string
}

// Validate checks the request carries what the gateway needs
func (r *CreatePaymentLinkRequest) Validate() error {
	if r.OrderCode <= 0 {
		return ErrGatewayInvalidResponse
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrGatewayInvalidAmount
	}
	return nil
}

// PaymentLink is the hosted checkout the resident is redirected to
type PaymentLink struct {
	PaymentLinkID string
	CheckoutURL   string
	QRCode        string
	OrderCode     int64
	Amount        decimal.Decimal
	Status        string
}

// WebhookEvent is a verified payment notification from the gateway
type WebhookEvent struct {
	OrderCode     int64
	Success       bool
	Code          string // gateway result code, "00" on success
	Description   string
	Amount        decimal.Decimal
	TransactionAt time.Time
	RawPayload    string
}

// PaymentGateway is the port for the hosted payment provider. The concrete
// adapter lives in the infrastructure layer.
type PaymentGateway interface {
	// CreatePaymentLink creates a checkout page for a bill payment
	CreatePaymentLink(ctx context.Context, req *CreatePaymentLinkRequest) (*PaymentLink, error)

	// VerifyWebhook checks the payload signature and parses the event.
	// Returns ErrGatewayInvalidCallback when the signature does not match.
	VerifyWebhook(payload []byte) (*WebhookEvent, error)
}
