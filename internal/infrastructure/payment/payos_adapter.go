package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/infrastructure/config"
)

const (
	payosSuccessCode        = "00"
	payosPaymentRequestPath = "/v2/payment-requests"
	payosTimeLayout         = "02/01/2006 15:04"
)

// PayOSAdapter implements the PaymentGateway port for the PayOS hosted
// checkout service.
type PayOSAdapter struct {
	cfg        config.PayOSConfig
	httpClient *http.Client
}

// NewPayOSAdapter creates a PayOS adapter
func NewPayOSAdapter(cfg config.PayOSConfig) (*PayOSAdapter, error) {
	if cfg.ClientID == "" || cfg.APIKey == "" || cfg.ChecksumKey == "" {
		return nil, billing.ErrGatewayNotConfigured
	}

	return &PayOSAdapter{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type payosCreateRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReturnURL   string `json:"returnUrl"`
	CancelURL   string `json:"cancelUrl"`
	Signature   string `json:"signature"`
}

type payosEnvelope struct {
	Code      string          `json:"code"`
	Desc      string          `json:"desc"`
	Data      json.RawMessage `json:"data"`
	Signature string          `json:"signature"`
}

type payosLinkData struct {
	PaymentLinkID string `json:"paymentLinkId"`
	CheckoutURL   string `json:"checkoutUrl"`
	QRCode        string `json:"qrCode"`
	OrderCode     int64  `json:"orderCode"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
}

type payosWebhookData struct {
	OrderCode           int64  `json:"orderCode"`
	Amount              int64  `json:"amount"`
	Description         string `json:"description"`
	Code                string `json:"code"`
	Desc                string `json:"desc"`
	TransactionDateTime string `json:"transactionDateTime"`
}

// CreatePaymentLink creates a hosted checkout page for a bill
func (a *PayOSAdapter) CreatePaymentLink(ctx context.Context, req *billing.CreatePaymentLinkRequest) (*billing.PaymentLink, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// PayOS amounts are integral VND.
	amount := req.Amount.Round(0).IntPart()
	body := payosCreateRequest{
		OrderCode:   req.OrderCode,
		Amount:      amount,
		Description: req.Description,
		ReturnURL:   req.ReturnURL,
		CancelURL:   req.CancelURL,
	}
	if body.ReturnURL == "" {
		body.ReturnURL = a.cfg.ReturnURL
	}
	if body.CancelURL == "" {
		body.CancelURL = a.cfg.CancelURL
	}

	// The create signature covers the five payment fields in alphabetical
	// key order.
	body.Signature = a.sign(map[string]string{
		"amount":      fmt.Sprintf("%d", amount),
		"cancelUrl":   body.CancelURL,
		"description": body.Description,
		"orderCode":   fmt.Sprintf("%d", body.OrderCode),
		"returnUrl":   body.ReturnURL,
	})

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("payos: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.cfg.BaseURL+payosPaymentRequestPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("payos: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", a.cfg.ClientID)
	httpReq.Header.Set("x-api-key", a.cfg.APIKey)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrGatewayRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrGatewayRequestFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", billing.ErrGatewayRequestFailed, resp.StatusCode)
	}

	var envelope payosEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrGatewayInvalidResponse, err)
	}
	if envelope.Code != payosSuccessCode {
		return nil, fmt.Errorf("%w: code %s (%s)", billing.ErrGatewayRequestFailed, envelope.Code, envelope.Desc)
	}

	var data payosLinkData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrGatewayInvalidResponse, err)
	}

	return &billing.PaymentLink{
		PaymentLinkID: data.PaymentLinkID,
		CheckoutURL:   data.CheckoutURL,
		QRCode:        data.QRCode,
		OrderCode:     data.OrderCode,
		Amount:        decimal.NewFromInt(data.Amount),
		Status:        data.Status,
	}, nil
}

// VerifyWebhook checks the payload signature and parses the event
func (a *PayOSAdapter) VerifyWebhook(payload []byte) (*billing.WebhookEvent, error) {
	var envelope payosEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrGatewayInvalidResponse, err)
	}
	if len(envelope.Data) == 0 {
		return nil, billing.ErrGatewayInvalidResponse
	}

	// The webhook signature covers every field of the data object, sorted
	// by key and joined as key=value pairs.
	if !a.verifyDataSignature(envelope.Data, envelope.Signature) {
		return nil, billing.ErrGatewayInvalidCallback
	}

	var data payosWebhookData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrGatewayInvalidResponse, err)
	}

	event := &billing.WebhookEvent{
		OrderCode:   data.OrderCode,
		Success:     data.Code == payosSuccessCode,
		Code:        data.Code,
		Description: data.Desc,
		Amount:      decimal.NewFromInt(data.Amount),
		RawPayload:  string(payload),
	}
	if data.TransactionDateTime != "" {
		if at, err := time.Parse(payosTimeLayout, data.TransactionDateTime); err == nil {
			event.TransactionAt = at
		}
	}
	if event.TransactionAt.IsZero() {
		event.TransactionAt = time.Now()
	}

	return event, nil
}

func (a *PayOSAdapter) verifyDataSignature(data json.RawMessage, signature string) bool {
	if signature == "" {
		return false
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}

	pairs := make(map[string]string, len(fields))
	for key, value := range fields {
		pairs[key] = stringifyField(value)
	}

	expected := a.sign(pairs)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// sign computes the hex HMAC-SHA256 of the pairs joined as
// "k1=v1&k2=v2&..." in ascending key order.
func (a *PayOSAdapter) sign(pairs map[string]string) string {
	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+pairs[key])
	}

	mac := hmac.New(sha256.New, []byte(a.cfg.ChecksumKey))
	mac.Write([]byte(strings.Join(parts, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

func stringifyField(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		// json.Unmarshal decodes numbers as float64; order codes and
		// amounts are integral.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		raw, _ := json.Marshal(v)
		return string(raw)
	}
}
