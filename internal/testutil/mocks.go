package testutil

import (
	"context"
	"sync"

	"github.com/abilic/ordergate/internal/participant/api"
)

// --- Order Client Mock ---

// MockOrderClient is a mock implementation of client.OrderClient.
type MockOrderClient struct {
	mu sync.Mutex

	CreateFunc  func(ctx context.Context, req api.CreateOrderRequest) (*api.OrderResponse, error)
	PrepareFunc func(ctx context.Context, req api.CreateOrderRequest) (*api.OrderResponse, error)
	CommitFunc  func(ctx context.Context, id string) (*api.OrderResponse, error)

	AbortCalls  []string
	CancelCalls []string
}

func (m *MockOrderClient) Create(ctx context.Context, req api.CreateOrderRequest) (*api.OrderResponse, error) {
	return m.CreateFunc(ctx, req)
}

func (m *MockOrderClient) Prepare(ctx context.Context, req api.CreateOrderRequest) (*api.OrderResponse, error) {
	return m.PrepareFunc(ctx, req)
}

func (m *MockOrderClient) Commit(ctx context.Context, id string) (*api.OrderResponse, error) {
	return m.CommitFunc(ctx, id)
}

func (m *MockOrderClient) Abort(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AbortCalls = append(m.AbortCalls, id)
}

func (m *MockOrderClient) Cancel(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelCalls = append(m.CancelCalls, id)
}

// --- Payment Client Mock ---

// MockPaymentClient is a mock implementation of client.PaymentClient.
type MockPaymentClient struct {
	mu sync.Mutex

	CreateFunc  func(ctx context.Context, req api.CreatePaymentRequest) (*api.PaymentResponse, error)
	PrepareFunc func(ctx context.Context, req api.CreatePaymentRequest) (*api.PaymentResponse, error)
	CommitFunc  func(ctx context.Context, id string) (*api.PaymentResponse, error)

	AbortCalls  []string
	RefundCalls []string

	FinaAvailability *bool
	PreAuthorization *bool
	FinaStatusFunc   func(ctx context.Context) (*api.FinaStatusResponse, error)
}

func (m *MockPaymentClient) Create(ctx context.Context, req api.CreatePaymentRequest) (*api.PaymentResponse, error) {
	return m.CreateFunc(ctx, req)
}

func (m *MockPaymentClient) Prepare(ctx context.Context, req api.CreatePaymentRequest) (*api.PaymentResponse, error) {
	return m.PrepareFunc(ctx, req)
}

func (m *MockPaymentClient) Commit(ctx context.Context, id string) (*api.PaymentResponse, error) {
	return m.CommitFunc(ctx, id)
}

func (m *MockPaymentClient) Abort(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AbortCalls = append(m.AbortCalls, id)
}

func (m *MockPaymentClient) Refund(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefundCalls = append(m.RefundCalls, id)
}

func (m *MockPaymentClient) SetFinaAvailability(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error) {
	m.FinaAvailability = &enabled
	return &api.ConfigSettingResponse{Setting: "fina_availability", Enabled: enabled}, nil
}

func (m *MockPaymentClient) SetPreAuthorization(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error) {
	m.PreAuthorization = &enabled
	return &api.ConfigSettingResponse{Setting: "pre_authorization", Enabled: enabled}, nil
}

func (m *MockPaymentClient) FinaStatus(ctx context.Context) (*api.FinaStatusResponse, error) {
	if m.FinaStatusFunc != nil {
		return m.FinaStatusFunc(ctx)
	}
	return &api.FinaStatusResponse{AvailabilityEnabled: true, PreAuthorizationEnabled: true}, nil
}

// --- Shipment Client Mock ---

// MockShipmentClient is a mock implementation of client.ShipmentClient.
type MockShipmentClient struct {
	mu sync.Mutex

	CreateFunc  func(ctx context.Context, req api.CreateShipmentRequest) (*api.ShipmentResponse, error)
	PrepareFunc func(ctx context.Context, req api.CreateShipmentRequest) (*api.ShipmentResponse, error)
	CommitFunc  func(ctx context.Context, id string) (*api.ShipmentResponse, error)

	AbortCalls  []string
	CancelCalls []string

	CarrierAvailability *bool
	CarrierCapacity     *bool
	CarrierStatusFunc   func(ctx context.Context) (*api.CarrierStatusResponse, error)
}

func (m *MockShipmentClient) Create(ctx context.Context, req api.CreateShipmentRequest) (*api.ShipmentResponse, error) {
	return m.CreateFunc(ctx, req)
}

func (m *MockShipmentClient) Prepare(ctx context.Context, req api.CreateShipmentRequest) (*api.ShipmentResponse, error) {
	return m.PrepareFunc(ctx, req)
}

func (m *MockShipmentClient) Commit(ctx context.Context, id string) (*api.ShipmentResponse, error) {
	return m.CommitFunc(ctx, id)
}

func (m *MockShipmentClient) Abort(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AbortCalls = append(m.AbortCalls, id)
}

func (m *MockShipmentClient) Cancel(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelCalls = append(m.CancelCalls, id)
}

func (m *MockShipmentClient) SetCarrierAvailability(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error) {
	m.CarrierAvailability = &enabled
	return &api.ConfigSettingResponse{Setting: "carrier_availability", Enabled: enabled}, nil
}

func (m *MockShipmentClient) SetCarrierCapacity(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error) {
	m.CarrierCapacity = &enabled
	return &api.ConfigSettingResponse{Setting: "carrier_capacity", Enabled: enabled}, nil
}

func (m *MockShipmentClient) CarrierStatus(ctx context.Context) (*api.CarrierStatusResponse, error) {
	if m.CarrierStatusFunc != nil {
		return m.CarrierStatusFunc(ctx)
	}
	return &api.CarrierStatusResponse{AvailabilityEnabled: true, CapacityEnabled: true}, nil
}
