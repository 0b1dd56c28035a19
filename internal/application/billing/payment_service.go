package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/domain/shared"
	"github.com/rental/backend/internal/infrastructure/cache"
)

const webhookIdempotencyTTL = 24 * time.Hour

// PaymentService settles bills: manager cash confirmations, gateway
// checkout links and the webhook that completes them.
type PaymentService struct {
	billRepo    billing.BillRepository
	paymentRepo billing.PaymentRepository
	gateway     billing.PaymentGateway
	idempotency cache.IdempotencyStore
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService. The gateway may be nil
// when no provider is configured; bank-transfer operations then fail with
// ErrGatewayNotConfigured.
func NewPaymentService(
	billRepo billing.BillRepository,
	paymentRepo billing.PaymentRepository,
	gateway billing.PaymentGateway,
	idempotency cache.IdempotencyStore,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		idempotency: idempotency,
		logger:      logger,
	}
}

// ConfirmCashPayment marks a bill paid in cash. Confirming an already paid
// bill is a warning no-op so double submissions stay harmless.
func (s *PaymentService) ConfirmCashPayment(ctx context.Context, input ConfirmCashPaymentInput) (*CashPaymentResult, error) {
	bill, err := s.billRepo.FindByID(ctx, input.BillID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, shared.ErrNotFound
	}

	if bill.Status == billing.BillStatusPaid {
		return &CashPaymentResult{
			BillID:      bill.ID,
			Amount:      bill.TotalAmount,
			AlreadyPaid: true,
		}, nil
	}

	now := time.Now()
	payment, err := billing.NewCashPayment(bill.ID, bill.TotalAmount, now)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	if err := bill.MarkPaid(now); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	s.logger.Info("Cash payment confirmed",
		zap.String("bill_id", bill.ID.String()),
		zap.String("amount", bill.TotalAmount.String()),
	)

	return &CashPaymentResult{
		PaymentID: payment.ID,
		BillID:    bill.ID,
		Amount:    payment.Amount,
	}, nil
}

// CreatePaymentLink opens a pending bank-transfer payment for a bill and
// returns the hosted checkout. The millisecond timestamp order code is how
// the webhook finds its way back to the payment.
func (s *PaymentService) CreatePaymentLink(ctx context.Context, input CreatePaymentLinkInput) (*PaymentLinkResult, error) {
	if s.gateway == nil {
		return nil, billing.ErrGatewayNotConfigured
	}

	bill, err := s.billRepo.FindByID(ctx, input.BillID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, shared.ErrNotFound
	}
	if !bill.IsPayable() {
		return nil, shared.NewDomainError("BILL_NOT_PAYABLE", "Bill has already been paid")
	}

	orderCode := time.Now().UnixMilli()
	payment, err := billing.NewBankPayment(bill.ID, bill.TotalAmount, orderCode)
	if err != nil {
		return nil, err
	}

	link, err := s.gateway.CreatePaymentLink(ctx, &billing.CreatePaymentLinkRequest{
		OrderCode:   orderCode,
		Amount:      bill.TotalAmount,
		Description: fmt.Sprintf("Rent %s %s", bill.RoomID, bill.Month.Format("2006-01")),
	})
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("Payment link created",
		zap.String("bill_id", bill.ID.String()),
		zap.Int64("order_code", orderCode),
	)

	return &PaymentLinkResult{
		PaymentID:   payment.ID,
		OrderCode:   orderCode,
		CheckoutURL: link.CheckoutURL,
		QRCode:      link.QRCode,
		Amount:      bill.TotalAmount,
	}, nil
}

// ProcessWebhook verifies and applies a gateway callback. Replays of the
// same (order code, result code) pair are acknowledged without touching
// the payment again.
func (s *PaymentService) ProcessWebhook(ctx context.Context, payload []byte) (*WebhookResult, error) {
	if s.gateway == nil {
		return nil, billing.ErrGatewayNotConfigured
	}

	event, err := s.gateway.VerifyWebhook(payload)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d:%s", event.OrderCode, event.Code)
	fresh, err := s.idempotency.MarkProcessed(ctx, key, webhookIdempotencyTTL)
	if err != nil {
		return nil, err
	}
	if !fresh {
		s.logger.Info("Webhook replay ignored", zap.Int64("order_code", event.OrderCode))
		return &WebhookResult{
			OrderCode:        event.OrderCode,
			AlreadyProcessed: true,
		}, nil
	}

	// The key was claimed before the state change landed. If applying the
	// event fails, release it so the provider's retry is not swallowed as
	// a replay.
	result, err := s.applyWebhookEvent(ctx, event)
	if err != nil {
		if relErr := s.idempotency.Release(ctx, key); relErr != nil {
			s.logger.Warn("Failed to release webhook idempotency key",
				zap.String("key", key),
				zap.Error(relErr),
			)
		}
		return nil, err
	}

	s.logger.Info("Webhook processed",
		zap.Int64("order_code", event.OrderCode),
		zap.String("code", event.Code),
		zap.String("payment_status", result.PaymentStatus.String()),
	)
	return result, nil
}

func (s *PaymentService) applyWebhookEvent(ctx context.Context, event *billing.WebhookEvent) (*WebhookResult, error) {
	payment, err := s.paymentRepo.FindByOrderCode(ctx, event.OrderCode)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.NewDomainError("UNKNOWN_ORDER_CODE",
			fmt.Sprintf("No payment matches order code %d", event.OrderCode))
	}

	result := &WebhookResult{OrderCode: event.OrderCode}

	if event.Success {
		transactionAt := event.TransactionAt
		if transactionAt.IsZero() {
			transactionAt = time.Now()
		}
		if err := payment.MarkSuccess(transactionAt); err != nil {
			return nil, err
		}
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return nil, err
		}

		bill, err := s.billRepo.FindByID(ctx, payment.BillID)
		if err != nil {
			return nil, err
		}
		if bill != nil {
			if err := bill.MarkPaid(transactionAt); err != nil {
				return nil, err
			}
			if err := s.billRepo.Save(ctx, bill); err != nil {
				return nil, err
			}
			result.BillPaid = true
		}
	} else {
		if err := payment.MarkFailed(event.Description); err != nil {
			return nil, err
		}
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return nil, err
		}
	}

	result.PaymentStatus = payment.Status
	return result, nil
}

// ListBillPayments returns every settlement attempt against a bill
func (s *PaymentService) ListBillPayments(ctx context.Context, billID uuid.UUID) ([]billing.Payment, error) {
	return s.paymentRepo.FindByBill(ctx, billID)
}
