package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/participant/api"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestOrderClient_CreateRoundTrip(t *testing.T) {
	id := uuid.NewString()
	srv := orderServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ana Horvat", req.CustomerName)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(api.OrderResponse{ID: id, Status: "CONFIRMED", TotalAmountCents: 129999})
	})

	c := NewOrderClient(srv.URL, time.Second, zerolog.Nop())
	resp, err := c.Create(context.Background(), api.CreateOrderRequest{
		CustomerName:    "Ana Horvat",
		CustomerEmail:   "ana@example.com",
		ShippingAddress: "Ilica 1, 10000 Zagreb",
		Items:           []api.OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "CONFIRMED", resp.Status)
}

func TestClient_MapsBusinessErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		code     string
		sentinel error
	}{
		{"insufficient stock", http.StatusUnprocessableEntity, "insufficient_stock", domainErrors.ErrInsufficientStock},
		{"not found", http.StatusNotFound, "not_found", domainErrors.ErrOrderNotFound},
		{"fina down", http.StatusServiceUnavailable, "fina_unavailable", domainErrors.ErrFinaUnavailable},
		{"carrier down", http.StatusServiceUnavailable, "carrier_unavailable", domainErrors.ErrCarrierUnavailable},
		{"state machine", http.StatusConflict, "invalid_state_transition", domainErrors.ErrInvalidStateTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := orderServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(api.ErrorResponse{Error: tt.name, Code: tt.code})
			})

			c := NewOrderClient(srv.URL, time.Second, zerolog.Nop())
			_, err := c.Create(context.Background(), api.CreateOrderRequest{})
			assert.ErrorIs(t, err, tt.sentinel)

			var pe *ParticipantError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "order", pe.Participant)
			assert.Equal(t, "create", pe.Action)
		})
	}
}

func TestClient_ServerErrorIsParticipantUnavailable(t *testing.T) {
	srv := orderServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := NewOrderClient(srv.URL, time.Second, zerolog.Nop())
	_, err := c.Create(context.Background(), api.CreateOrderRequest{})
	assert.ErrorIs(t, err, domainErrors.ErrParticipantUnavailable)
}

func TestClient_ConnectionRefusedIsParticipantUnavailable(t *testing.T) {
	srv := orderServer(t, func(w http.ResponseWriter, _ *http.Request) {})
	url := srv.URL
	srv.Close()

	c := NewOrderClient(url, time.Second, zerolog.Nop())
	_, err := c.Create(context.Background(), api.CreateOrderRequest{})
	assert.ErrorIs(t, err, domainErrors.ErrParticipantUnavailable)
}

func TestClient_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits atomic.Int64
	srv := orderServer(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := NewOrderClient(srv.URL, time.Second, zerolog.Nop())
	for i := 0; i < 15; i++ {
		_, err := c.Create(context.Background(), api.CreateOrderRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrParticipantUnavailable)
	}

	// Once the breaker opens the server stops seeing requests.
	assert.Less(t, hits.Load(), int64(15))
}

func TestClient_CompensationSwallowsFailures(t *testing.T) {
	var aborted atomic.Bool
	srv := orderServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/orders/42/cancel" {
			aborted.Store(true)
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := NewOrderClient(srv.URL, time.Second, zerolog.Nop())
	// Must not panic or propagate the failure.
	c.Cancel(context.Background(), "42")
	assert.True(t, aborted.Load())
}

func TestPaymentClient_PrepareAndConfig(t *testing.T) {
	srv := orderServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/payments/prepare":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(api.PaymentResponse{Status: "PRE_AUTHORIZED", TransactionID: "PRE-123"})
		case "/api/config/fina/availability":
			assert.Equal(t, http.MethodPut, r.Method)
			var req api.ConfigToggleRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			json.NewEncoder(w).Encode(api.ConfigSettingResponse{Setting: "fina_availability", Enabled: *req.Enabled})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	c := NewPaymentClient(srv.URL, time.Second, zerolog.Nop())

	p, err := c.Prepare(context.Background(), api.CreatePaymentRequest{OrderID: uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, "PRE-123", p.TransactionID)

	setting, err := c.SetFinaAvailability(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, setting.Enabled)
}

func TestShipmentClient_CommitRoundTrip(t *testing.T) {
	srv := orderServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shipments/abc/commit", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.ShipmentResponse{ID: "abc", Status: "PREPARING", TrackingNumber: "TRK-1A2B3C4D"})
	})

	c := NewShipmentClient(srv.URL, time.Second, zerolog.Nop())
	sh, err := c.Commit(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "TRK-1A2B3C4D", sh.TrackingNumber)
}
