package client

import (
	"context"
	"net/http"
	"time"

	"github.com/abilic/ordergate/internal/participant/api"
	"github.com/rs/zerolog"
)

// PaymentClient is the gateway's view of the payment service.
type PaymentClient interface {
	Create(ctx context.Context, req api.CreatePaymentRequest) (*api.PaymentResponse, error)
	Prepare(ctx context.Context, req api.CreatePaymentRequest) (*api.PaymentResponse, error)
	Commit(ctx context.Context, id string) (*api.PaymentResponse, error)
	// Abort and Refund are compensations: failures are logged, not returned.
	Abort(ctx context.Context, id string)
	Refund(ctx context.Context, id string)
	SetFinaAvailability(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error)
	SetPreAuthorization(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error)
	FinaStatus(ctx context.Context) (*api.FinaStatusResponse, error)
}

// HTTPPaymentClient talks to the payment service over HTTP.
type HTTPPaymentClient struct {
	*baseClient
}

// NewPaymentClient creates a payment service client.
func NewPaymentClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPPaymentClient {
	return &HTTPPaymentClient{newBaseClient("payment", baseURL, timeout, logger)}
}

func (c *HTTPPaymentClient) Create(ctx context.Context, req api.CreatePaymentRequest) (*api.PaymentResponse, error) {
	var out api.PaymentResponse
	if err := c.do(ctx, "create", http.MethodPost, "/api/payments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPPaymentClient) Prepare(ctx context.Context, req api.CreatePaymentRequest) (*api.PaymentResponse, error) {
	var out api.PaymentResponse
	if err := c.do(ctx, "prepare", http.MethodPost, "/api/payments/prepare", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPPaymentClient) Commit(ctx context.Context, id string) (*api.PaymentResponse, error) {
	var out api.PaymentResponse
	if err := c.do(ctx, "commit", http.MethodPost, "/api/payments/"+id+"/commit", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPPaymentClient) Abort(ctx context.Context, id string) {
	c.compensate(ctx, "abort", "/api/payments/"+id+"/abort")
}

func (c *HTTPPaymentClient) Refund(ctx context.Context, id string) {
	c.compensate(ctx, "refund", "/api/payments/"+id+"/refund")
}

func (c *HTTPPaymentClient) SetFinaAvailability(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error) {
	var out api.ConfigSettingResponse
	req := api.ConfigToggleRequest{Enabled: &enabled}
	if err := c.do(ctx, "set fina availability", http.MethodPut, "/api/config/fina/availability", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPPaymentClient) SetPreAuthorization(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error) {
	var out api.ConfigSettingResponse
	req := api.ConfigToggleRequest{Enabled: &enabled}
	if err := c.do(ctx, "set pre-authorization", http.MethodPut, "/api/config/fina/pre-authorization", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPPaymentClient) FinaStatus(ctx context.Context) (*api.FinaStatusResponse, error) {
	var out api.FinaStatusResponse
	if err := c.do(ctx, "fina status", http.MethodGet, "/api/config/fina/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
