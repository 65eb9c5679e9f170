package client

import (
	"context"
	"net/http"
	"time"

	"github.com/abilic/ordergate/internal/participant/api"
	"github.com/rs/zerolog"
)

// OrderClient is the gateway's view of the order service.
type OrderClient interface {
	Create(ctx context.Context, req api.CreateOrderRequest) (*api.OrderResponse, error)
	Prepare(ctx context.Context, req api.CreateOrderRequest) (*api.OrderResponse, error)
	Commit(ctx context.Context, id string) (*api.OrderResponse, error)
	// Abort and Cancel are compensations: failures are logged, not returned.
	Abort(ctx context.Context, id string)
	Cancel(ctx context.Context, id string)
}

// HTTPOrderClient talks to the order service over HTTP.
type HTTPOrderClient struct {
	*baseClient
}

// NewOrderClient creates an order service client.
func NewOrderClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPOrderClient {
	return &HTTPOrderClient{newBaseClient("order", baseURL, timeout, logger)}
}

func (c *HTTPOrderClient) Create(ctx context.Context, req api.CreateOrderRequest) (*api.OrderResponse, error) {
	var out api.OrderResponse
	if err := c.do(ctx, "create", http.MethodPost, "/api/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPOrderClient) Prepare(ctx context.Context, req api.CreateOrderRequest) (*api.OrderResponse, error) {
	var out api.OrderResponse
	if err := c.do(ctx, "prepare", http.MethodPost, "/api/orders/prepare", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPOrderClient) Commit(ctx context.Context, id string) (*api.OrderResponse, error) {
	var out api.OrderResponse
	if err := c.do(ctx, "commit", http.MethodPost, "/api/orders/"+id+"/commit", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPOrderClient) Abort(ctx context.Context, id string) {
	c.compensate(ctx, "abort", "/api/orders/"+id+"/abort")
}

func (c *HTTPOrderClient) Cancel(ctx context.Context, id string) {
	c.compensate(ctx, "cancel", "/api/orders/"+id+"/cancel")
}
