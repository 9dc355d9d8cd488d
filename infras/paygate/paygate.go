package paygate

//go:generate go run go.uber.org/mock/mockgen -source=./paygate.go -destination=./mocks/paygate_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"condotel/config"
	"condotel/infras/otel"
	"condotel/shared/constant"
	"condotel/shared/failure"
)

// Provider status codes this system depends on.
const (
	CodeSuccess = "00"

	StatusPaid      = "PAID"
	StatusPending   = "PENDING"
	StatusCancelled = "CANCELLED"
)

type CreateLinkRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReturnURL   string `json:"returnUrl"`
	CancelURL   string `json:"cancelUrl"`
	Signature   string `json:"signature"`
}

type CreateLinkResponse struct {
	PaymentLinkID string `json:"paymentLinkId"`
	CheckoutURL   string `json:"checkoutUrl"`
}

type PaymentInfo struct {
	OrderCode int64  `json:"orderCode"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
}

type RefundRequest struct {
	OriginalOrderCode     int64  `json:"originalOrderCode"`
	RefundAmount          int64  `json:"refundAmount"`
	Description           string `json:"description"`
	CustomerAccountNumber string `json:"customerAccountNumber"`
	CustomerBankCode      string `json:"customerBankCode"`
}

type RefundResponse struct {
	ReferenceID string `json:"referenceId"`
}

// WebhookPayload is the raw callback body the provider posts on payment
// settlement. It is decoded and verified exactly once at the boundary.
type WebhookPayload struct {
	OrderCode int64  `json:"orderCode" validate:"required"`
	Code      string `json:"code"      validate:"required"`
	Amount    int64  `json:"amount"`
	Signature string `json:"signature" validate:"required"`
}

// Client talks to the external payment provider. All calls block on network
// I/O under a bounded timeout and never hold database state while waiting.
type Client interface {
	CreatePaymentLink(ctx context.Context, req CreateLinkRequest) (CreateLinkResponse, error)
	GetPaymentInfo(ctx context.Context, orderCode int64) (PaymentInfo, error)
	Refund(ctx context.Context, req RefundRequest) (RefundResponse, error)
	VerifyWebhook(payload WebhookPayload) error
}

type clientImpl struct {
	config *config.Config
	http   *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Client {
	return &clientImpl{
		config: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.Payment.TimeoutSeconds) * time.Second,
		},
		otel: otl,
	}
}

type envelope struct {
	Code string          `json:"code"`
	Desc string          `json:"desc"`
	Data json.RawMessage `json:"data"`
}

func (c *clientImpl) CreatePaymentLink(ctx context.Context, req CreateLinkRequest) (res CreateLinkResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".CreatePaymentLink")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Signature = SignPaymentLink(c.config.Payment.ChecksumKey, req)

	if err = c.post(ctx, "/v2/payment-requests", req, &res); err != nil {
		log.Error().Err(err).Int64("orderCode", req.OrderCode).Msg("failed to create payment link")

		return res, failure.Gateway("create payment link", err) //nolint:wrapcheck
	}

	return res, nil
}

func (c *clientImpl) GetPaymentInfo(ctx context.Context, orderCode int64) (res PaymentInfo, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".GetPaymentInfo")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = c.get(ctx, fmt.Sprintf("/v2/payment-requests/%d", orderCode), &res); err != nil {
		log.Error().Err(err).Int64("orderCode", orderCode).Msg("failed to get payment info")

		return res, failure.Gateway("get payment info", err) //nolint:wrapcheck
	}

	return res, nil
}

func (c *clientImpl) Refund(ctx context.Context, req RefundRequest) (res RefundResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Refund")
	defer scope.End()
	defer scope.TraceIfError(err)

	path := fmt.Sprintf("/v2/payment-requests/%d/refund", req.OriginalOrderCode)

	if err = c.post(ctx, path, req, &res); err != nil {
		log.Error().Err(err).Int64("orderCode", req.OriginalOrderCode).Msg("failed to request gateway refund")

		return res, failure.Gateway("refund", err) //nolint:wrapcheck
	}

	return res, nil
}

func (c *clientImpl) VerifyWebhook(payload WebhookPayload) error {
	expected := SignWebhook(c.config.Payment.ChecksumKey, payload)

	if !SignatureEqual(expected, payload.Signature) {
		return failure.ErrAuthenticity
	}

	return nil
}

func (c *clientImpl) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Payment.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	return c.do(req, out)
}

func (c *clientImpl) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Payment.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	return c.do(req, out)
}

func (c *clientImpl) do(req *http.Request, out any) error {
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set("x-client-id", c.config.Payment.ClientID)
	req.Header.Set("x-api-key", c.config.Payment.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if env.Code != CodeSuccess {
		return fmt.Errorf("gateway responded %s: %s", env.Code, env.Desc)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode gateway response data: %w", err)
		}
	}

	return nil
}
