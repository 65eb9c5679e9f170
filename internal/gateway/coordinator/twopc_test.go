package coordinator_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/gateway/coordinator"
	"github.com/abilic/ordergate/internal/participant/api"
	"github.com/abilic/ordergate/internal/testutil"
	"github.com/abilic/ordergate/pkg/retry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
	}
}

func preparedMocks() sagaMocks {
	orderID := uuid.NewString()
	paymentID := uuid.NewString()
	shipmentID := uuid.NewString()

	return sagaMocks{
		orders: &testutil.MockOrderClient{
			PrepareFunc: func(_ context.Context, _ api.CreateOrderRequest) (*api.OrderResponse, error) {
				return &api.OrderResponse{ID: orderID, Status: "PREPARED", TotalAmountCents: 259998}, nil
			},
			CommitFunc: func(_ context.Context, id string) (*api.OrderResponse, error) {
				return &api.OrderResponse{ID: id, Status: "CONFIRMED", TotalAmountCents: 259998}, nil
			},
		},
		payments: &testutil.MockPaymentClient{
			PrepareFunc: func(_ context.Context, req api.CreatePaymentRequest) (*api.PaymentResponse, error) {
				return &api.PaymentResponse{
					ID: paymentID, OrderID: req.OrderID,
					Status: "PRE_AUTHORIZED", TransactionID: "PRE-abc",
				}, nil
			},
			CommitFunc: func(_ context.Context, id string) (*api.PaymentResponse, error) {
				return &api.PaymentResponse{ID: id, Status: "COMPLETED", TransactionID: "CAPTURED-abc"}, nil
			},
		},
		shipments: &testutil.MockShipmentClient{
			PrepareFunc: func(_ context.Context, req api.CreateShipmentRequest) (*api.ShipmentResponse, error) {
				return &api.ShipmentResponse{ID: shipmentID, OrderID: req.OrderID, Status: "RESERVED"}, nil
			},
			CommitFunc: func(_ context.Context, id string) (*api.ShipmentResponse, error) {
				return &api.ShipmentResponse{ID: id, Status: "PREPARING", TrackingNumber: "TRK-1A2B3C4D"}, nil
			},
		},
	}
}

func newTwoPhase(m sagaMocks) *coordinator.TwoPhaseCoordinator {
	return coordinator.NewTwoPhaseCoordinator(
		m.orders, m.payments, m.shipments, testMetrics(), zerolog.Nop(), fastRetry())
}

func TestTwoPhase_PlaceOrderSuccess(t *testing.T) {
	m := preparedMocks()
	resp := newTwoPhase(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.True(t, resp.Success)
	assert.Equal(t, "Order placed successfully", resp.Message)
	// Responses reflect the committed state, not the prepared one.
	assert.Equal(t, "CONFIRMED", resp.OrderStatus)
	assert.Equal(t, "COMPLETED", resp.PaymentStatus)
	assert.Equal(t, "CAPTURED-abc", resp.TransactionID)
	assert.Equal(t, "PREPARING", resp.ShipmentStatus)
	assert.Equal(t, "TRK-1A2B3C4D", resp.TrackingNumber)
	assert.Equal(t, 0, resp.Compensations)

	assert.Empty(t, m.orders.AbortCalls)
	assert.Empty(t, m.payments.AbortCalls)
	assert.Empty(t, m.shipments.AbortCalls)
}

func TestTwoPhase_OrderPrepareFailureAbortsNothing(t *testing.T) {
	m := preparedMocks()
	m.orders.PrepareFunc = func(_ context.Context, _ api.CreateOrderRequest) (*api.OrderResponse, error) {
		return nil, domainErrors.ErrInsufficientStock
	}

	resp := newTwoPhase(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.False(t, resp.Success)
	assert.Equal(t, "Order preparation failed - transaction aborted", resp.Message)
	assert.Equal(t, 0, resp.Compensations)
	assert.Empty(t, m.orders.AbortCalls)
	assert.Empty(t, m.payments.AbortCalls)
}

func TestTwoPhase_PaymentPrepareFailureAbortsOrder(t *testing.T) {
	m := preparedMocks()
	m.payments.PrepareFunc = func(_ context.Context, _ api.CreatePaymentRequest) (*api.PaymentResponse, error) {
		return nil, domainErrors.ErrFinaUnavailable
	}

	resp := newTwoPhase(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.False(t, resp.Success)
	assert.Equal(t, "FINA service unavailable", resp.ErrorDetails)
	assert.Equal(t, 1, resp.Compensations)

	require.Len(t, m.orders.AbortCalls, 1)
	assert.Equal(t, resp.OrderID, m.orders.AbortCalls[0])
	assert.Empty(t, m.payments.AbortCalls)
	assert.Empty(t, m.shipments.AbortCalls)
}

func TestTwoPhase_ShipmentPrepareFailureAbortsPaymentAndOrder(t *testing.T) {
	m := preparedMocks()
	m.shipments.PrepareFunc = func(_ context.Context, _ api.CreateShipmentRequest) (*api.ShipmentResponse, error) {
		return nil, domainErrors.ErrCarrierUnavailable
	}

	resp := newTwoPhase(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.False(t, resp.Success)
	assert.Equal(t, "Order preparation failed - transaction aborted", resp.Message)
	assert.Equal(t, "Shipping capacity unavailable", resp.ErrorDetails)
	assert.Equal(t, 2, resp.Compensations)

	require.Len(t, m.payments.AbortCalls, 1)
	assert.Equal(t, resp.PaymentID, m.payments.AbortCalls[0])
	require.Len(t, m.orders.AbortCalls, 1)
	assert.Equal(t, resp.OrderID, m.orders.AbortCalls[0])
	assert.Empty(t, m.shipments.AbortCalls)
}

func TestTwoPhase_NoCommitsAfterPrepareFailure(t *testing.T) {
	m := preparedMocks()
	var committed atomic.Bool
	m.orders.CommitFunc = func(_ context.Context, id string) (*api.OrderResponse, error) {
		committed.Store(true)
		return &api.OrderResponse{ID: id, Status: "CONFIRMED"}, nil
	}
	m.shipments.PrepareFunc = func(_ context.Context, _ api.CreateShipmentRequest) (*api.ShipmentResponse, error) {
		return nil, domainErrors.ErrCarrierUnavailable
	}

	newTwoPhase(m).PlaceOrder(context.Background(), placeOrderRequest())
	assert.False(t, committed.Load())
}

func TestTwoPhase_CommitRetriesTransportFailures(t *testing.T) {
	m := preparedMocks()
	var attempts atomic.Int64
	m.payments.CommitFunc = func(_ context.Context, id string) (*api.PaymentResponse, error) {
		if attempts.Add(1) < 3 {
			return nil, domainErrors.ErrParticipantUnavailable
		}
		return &api.PaymentResponse{ID: id, Status: "COMPLETED", TransactionID: "CAPTURED-abc"}, nil
	}

	resp := newTwoPhase(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.True(t, resp.Success)
	assert.Equal(t, int64(3), attempts.Load())
}

func TestTwoPhase_CommitBusinessFailureNotRetried(t *testing.T) {
	m := preparedMocks()
	var attempts atomic.Int64
	m.payments.CommitFunc = func(_ context.Context, _ string) (*api.PaymentResponse, error) {
		attempts.Add(1)
		return nil, domainErrors.ErrInvalidStateTransition
	}

	resp := newTwoPhase(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.False(t, resp.Success)
	assert.Equal(t, "Failed to place order", resp.Message)
	assert.Equal(t, int64(1), attempts.Load())
	// Commit failures are surfaced, not compensated: the order participant has
	// already been finalized.
	assert.Equal(t, 0, resp.Compensations)
	assert.Empty(t, m.orders.AbortCalls)
}

func TestTwoPhase_CommitExhaustsRetries(t *testing.T) {
	m := preparedMocks()
	var attempts atomic.Int64
	m.shipments.CommitFunc = func(_ context.Context, _ string) (*api.ShipmentResponse, error) {
		attempts.Add(1)
		return nil, domainErrors.ErrParticipantUnavailable
	}

	resp := newTwoPhase(m).PlaceOrder(context.Background(), placeOrderRequest())

	require.False(t, resp.Success)
	assert.Equal(t, int64(3), attempts.Load())
}
