package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbilling "github.com/rental/backend/internal/application/billing"
	"github.com/rental/backend/internal/domain/billing"
)

// maxWebhookBody bounds how much of a gateway callback we will read
const maxWebhookBody = 1 << 20

// PaymentHandler handles bill payment requests and gateway callbacks
type PaymentHandler struct {
	BaseHandler
	paymentService *appbilling.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *appbilling.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes. The webhook endpoint is public:
// the gateway authenticates itself through the payload signature.
func (h *PaymentHandler) RegisterRoutes(public, authed, managed *gin.RouterGroup) {
	public.POST("/webhooks/payment", h.Webhook)
	authed.POST("/bills/:id/payment-link", h.CreatePaymentLink)
	authed.GET("/bills/:id/payments", h.ListPayments)
	managed.POST("/bills/:id/cash-payment", h.ConfirmCash)
}

// CashPaymentResponse reports a cash confirmation
type CashPaymentResponse struct {
	PaymentID   uuid.UUID       `json:"payment_id"`
	BillID      uuid.UUID       `json:"bill_id"`
	Amount      decimal.Decimal `json:"amount"`
	AlreadyPaid bool            `json:"already_paid"`
}

// PaymentLinkResponse carries a hosted checkout
type PaymentLinkResponse struct {
	PaymentID   uuid.UUID       `json:"payment_id"`
	OrderCode   int64           `json:"order_code"`
	CheckoutURL string          `json:"checkout_url"`
	QRCode      string          `json:"qr_code,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentResponse describes one payment attempt against a bill
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	BillID        uuid.UUID       `json:"bill_id"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	OrderCode     int64           `json:"order_code,omitempty"`
	TransactionAt *time.Time      `json:"transaction_at,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty"`
}

// WebhookResponse reports how a gateway callback was handled
type WebhookResponse struct {
	OrderCode        int64  `json:"order_code"`
	PaymentStatus    string `json:"payment_status"`
	BillPaid         bool   `json:"bill_paid"`
	AlreadyProcessed bool   `json:"already_processed"`
}

func toPaymentResponse(p billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		BillID:        p.BillID,
		Method:        string(p.Method),
		Status:        string(p.Status),
		Amount:        p.Amount,
		OrderCode:     p.OrderCode,
		TransactionAt: p.TransactionAt,
		FailureReason: p.FailureReason,
	}
}

// ConfirmCash records a manager-verified cash settlement for a bill
func (h *PaymentHandler) ConfirmCash(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	result, err := h.paymentService.ConfirmCashPayment(c.Request.Context(), appbilling.ConfirmCashPaymentInput{
		BillID: billID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CashPaymentResponse{
		PaymentID:   result.PaymentID,
		BillID:      result.BillID,
		Amount:      result.Amount,
		AlreadyPaid: result.AlreadyPaid,
	})
}

// CreatePaymentLink asks the gateway for a hosted checkout page
func (h *PaymentHandler) CreatePaymentLink(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	result, err := h.paymentService.CreatePaymentLink(c.Request.Context(), appbilling.CreatePaymentLinkInput{
		BillID: billID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, PaymentLinkResponse{
		PaymentID:   result.PaymentID,
		OrderCode:   result.OrderCode,
		CheckoutURL: result.CheckoutURL,
		QRCode:      result.QRCode,
		Amount:      result.Amount,
	})
}

// ListPayments returns the payment attempts against a bill
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	payments, err := h.paymentService.ListBillPayments(c.Request.Context(), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	h.Success(c, out)
}

// Webhook processes a payment notification from the gateway
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.BadRequest(c, "Unreadable request body")
		return
	}

	result, err := h.paymentService.ProcessWebhook(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, billing.ErrGatewayInvalidCallback) {
			h.BadRequest(c, "Invalid webhook signature")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, WebhookResponse{
		OrderCode:        result.OrderCode,
		PaymentStatus:    string(result.PaymentStatus),
		BillPaid:         result.BillPaid,
		AlreadyProcessed: result.AlreadyProcessed,
	})
}
