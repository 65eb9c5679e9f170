package client

import (
	"context"
	"net/http"
	"time"

	"github.com/abilic/ordergate/internal/participant/api"
	"github.com/rs/zerolog"
)

// ShipmentClient is the gateway's view of the shipping service.
type ShipmentClient interface {
	Create(ctx context.Context, req api.CreateShipmentRequest) (*api.ShipmentResponse, error)
	Prepare(ctx context.Context, req api.CreateShipmentRequest) (*api.ShipmentResponse, error)
	Commit(ctx context.Context, id string) (*api.ShipmentResponse, error)
	// Abort and Cancel are compensations: failures are logged, not returned.
	Abort(ctx context.Context, id string)
	Cancel(ctx context.Context, id string)
	SetCarrierAvailability(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error)
	SetCarrierCapacity(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error)
	CarrierStatus(ctx context.Context) (*api.CarrierStatusResponse, error)
}

// HTTPShipmentClient talks to the shipping service over HTTP.
type HTTPShipmentClient struct {
	*baseClient
}

// NewShipmentClient creates a shipping service client.
func NewShipmentClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPShipmentClient {
	return &HTTPShipmentClient{newBaseClient("shipment", baseURL, timeout, logger)}
}

func (c *HTTPShipmentClient) Create(ctx context.Context, req api.CreateShipmentRequest) (*api.ShipmentResponse, error) {
	var out api.ShipmentResponse
	if err := c.do(ctx, "create", http.MethodPost, "/api/shipments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPShipmentClient) Prepare(ctx context.Context, req api.CreateShipmentRequest) (*api.ShipmentResponse, error) {
	var out api.ShipmentResponse
	if err := c.do(ctx, "prepare", http.MethodPost, "/api/shipments/prepare", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPShipmentClient) Commit(ctx context.Context, id string) (*api.ShipmentResponse, error) {
	var out api.ShipmentResponse
	if err := c.do(ctx, "commit", http.MethodPost, "/api/shipments/"+id+"/commit", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPShipmentClient) Abort(ctx context.Context, id string) {
	c.compensate(ctx, "abort", "/api/shipments/"+id+"/abort")
}

func (c *HTTPShipmentClient) Cancel(ctx context.Context, id string) {
	c.compensate(ctx, "cancel", "/api/shipments/"+id+"/cancel")
}

func (c *HTTPShipmentClient) SetCarrierAvailability(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error) {
	var out api.ConfigSettingResponse
	req := api.ConfigToggleRequest{Enabled: &enabled}
	if err := c.do(ctx, "set carrier availability", http.MethodPut, "/api/config/carrier/availability", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPShipmentClient) SetCarrierCapacity(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error) {
	var out api.ConfigSettingResponse
	req := api.ConfigToggleRequest{Enabled: &enabled}
	if err := c.do(ctx, "set carrier capacity", http.MethodPut, "/api/config/carrier/capacity", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPShipmentClient) CarrierStatus(ctx context.Context) (*api.CarrierStatusResponse, error) {
	var out api.CarrierStatusResponse
	if err := c.do(ctx, "carrier status", http.MethodGet, "/api/config/carrier/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
