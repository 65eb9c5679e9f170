package coordinator_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/gateway/coordinator"
	"github.com/abilic/ordergate/internal/observability"
	"github.com/abilic/ordergate/internal/participant/api"
	"github.com/abilic/ordergate/internal/testutil"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetrics("test", prometheus.NewRegistry())
}

func placeOrderRequest() coordinator.PlaceOrderRequest {
	return coordinator.PlaceOrderRequest{
		CustomerName:       "Ana Horvat",
		CustomerEmail:      "ana@example.com",
		ShippingAddress:    "Ilica 1, 10000 Zagreb",
		Items:              []api.OrderItemRequest{{ProductID: 1, Quantity: 2}},
		PaymentMethod:      "CREDIT_CARD",
		CardLastFourDigits: "4242",
		Carrier:            "DHL",
	}
}

type sagaMocks struct {
	orders    *testutil.MockOrderClient
	payments  *testutil.MockPaymentClient
	shipments *testutil.MockShipmentClient
}

func happyMocks() sagaMocks {
	orderID := uuid.NewString()
	return sagaMocks{
		orders: &testutil.MockOrderClient{
			CreateFunc: func(_ context.Context, _ api.CreateOrderRequest) (*api.OrderResponse, error) {
				return &api.OrderResponse{ID: orderID, Status: "CONFIRMED", TotalAmountCents: 259998}, nil
			},
		},
		payments: &testutil.MockPaymentClient{
			CreateFunc: func(_ context.Context, req api.CreatePaymentRequest) (*api.PaymentResponse, error) {
				return &api.PaymentResponse{
					ID: uuid.NewString(), OrderID: req.OrderID,
					Status: "COMPLETED", TransactionID: "TXN-abc", AmountCents: 259998,
				}, nil
			},
		},
		shipments: &testutil.MockShipmentClient{
			CreateFunc: func(_ context.Context, req api.CreateShipmentRequest) (*api.ShipmentResponse, error) {
				return &api.ShipmentResponse{
					ID: uuid.NewString(), OrderID: req.OrderID,
					Status: "PREPARING", TrackingNumber: "TRK-1A2B3C4D",
				}, nil
			},
		},
	}
}

func newSaga(m sagaMocks) *coordinator.SagaCoordinator {
	return coordinator.NewSagaCoordinator(m.orders, m.payments, m.shipments, testMetrics(), zerolog.Nop())
}

func TestSaga_PlaceOrderSuccess(t *testing.T) {
	m := happyMocks()
	resp := newSaga(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.True(t, resp.Success)
	assert.Equal(t, "Order placed successfully", resp.Message)
	assert.Equal(t, "CONFIRMED", resp.OrderStatus)
	assert.Equal(t, "COMPLETED", resp.PaymentStatus)
	assert.Equal(t, "TXN-abc", resp.TransactionID)
	assert.Equal(t, "TRK-1A2B3C4D", resp.TrackingNumber)
	assert.Equal(t, int64(259998), resp.TotalAmountCents)
	assert.Equal(t, 0, resp.Compensations)

	assert.Empty(t, m.orders.CancelCalls)
	assert.Empty(t, m.payments.RefundCalls)
	assert.Empty(t, m.shipments.CancelCalls)
}

func TestSaga_OrderFailureNeedsNoCompensation(t *testing.T) {
	m := happyMocks()
	m.orders.CreateFunc = func(_ context.Context, _ api.CreateOrderRequest) (*api.OrderResponse, error) {
		return nil, domainErrors.ErrInsufficientStock
	}

	resp := newSaga(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.False(t, resp.Success)
	assert.Equal(t, "Failed to place order", resp.Message)
	assert.Equal(t, 0, resp.Compensations)
	assert.Empty(t, m.orders.CancelCalls)
}

func TestSaga_PaymentFailureCancelsOrder(t *testing.T) {
	m := happyMocks()
	m.payments.CreateFunc = func(_ context.Context, _ api.CreatePaymentRequest) (*api.PaymentResponse, error) {
		return nil, domainErrors.ErrFinaUnavailable
	}

	resp := newSaga(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.False(t, resp.Success)
	assert.Equal(t, "Failed to place order", resp.Message)
	assert.Equal(t, "FINA service unavailable", resp.ErrorDetails)
	assert.Equal(t, 1, resp.Compensations)

	require.Len(t, m.orders.CancelCalls, 1)
	assert.Equal(t, resp.OrderID, m.orders.CancelCalls[0])
	assert.Empty(t, m.payments.RefundCalls)
	assert.Empty(t, m.shipments.CancelCalls)
}

func TestSaga_ShipmentFailureRefundsAndCancels(t *testing.T) {
	m := happyMocks()
	m.shipments.CreateFunc = func(_ context.Context, _ api.CreateShipmentRequest) (*api.ShipmentResponse, error) {
		return nil, domainErrors.ErrCarrierUnavailable
	}

	resp := newSaga(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.False(t, resp.Success)
	assert.Equal(t, "Shipping capacity unavailable", resp.ErrorDetails)
	assert.Equal(t, 2, resp.Compensations)

	// Payment is unwound before the order.
	require.Len(t, m.payments.RefundCalls, 1)
	assert.Equal(t, resp.PaymentID, m.payments.RefundCalls[0])
	require.Len(t, m.orders.CancelCalls, 1)
	assert.Equal(t, resp.OrderID, m.orders.CancelCalls[0])
}

func TestSaga_UnexpectedFailureSummary(t *testing.T) {
	m := happyMocks()
	m.payments.CreateFunc = func(_ context.Context, _ api.CreatePaymentRequest) (*api.PaymentResponse, error) {
		return nil, errors.New("payment service exploded")
	}

	resp := newSaga(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.False(t, resp.Success)
	assert.Equal(t, "Unexpected error: payment service exploded", resp.ErrorDetails)
}
