package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abilic/ordergate/internal/participant/api"
	orderSvc "github.com/abilic/ordergate/internal/participant/order"
	paymentSvc "github.com/abilic/ordergate/internal/participant/payment"
	productSvc "github.com/abilic/ordergate/internal/participant/product"
	shipmentSvc "github.com/abilic/ordergate/internal/participant/shipment"
	"github.com/abilic/ordergate/internal/repository/memory"
	"github.com/abilic/ordergate/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// participantFixture wires all four services against in-memory repositories,
// sharing the order repository the way the deployed services share the
// database.
type participantFixture struct {
	orders    http.Handler
	payments  http.Handler
	shipments http.Handler
	products  http.Handler

	orderService *orderSvc.Service
	fina         *paymentSvc.FinancialAgency
	carrier      *shipmentSvc.CarrierGateway
}

func setupParticipants(t *testing.T) *participantFixture {
	t.Helper()
	logger := zerolog.Nop()

	productRepo := memory.NewProductRepository()
	productRepo.Seed(testutil.CatalogProducts()...)
	products := productSvc.NewService(productRepo, logger)

	orderRepo := memory.NewOrderRepository()
	orders := orderSvc.NewService(orderRepo, products, logger)

	fina := paymentSvc.NewFinancialAgency(logger)
	payments := paymentSvc.NewService(memory.NewPaymentRepository(), orderRepo, fina, logger)

	carrier := shipmentSvc.NewCarrierGateway(logger)
	shipments := shipmentSvc.NewService(memory.NewShipmentRepository(), orderRepo, carrier, logger)

	return &participantFixture{
		orders:       api.NewOrderRouter(api.NewOrderController(orders)),
		payments:     api.NewPaymentRouter(api.NewPaymentController(payments, fina)),
		shipments:    api.NewShipmentRouter(api.NewShipmentController(shipments, carrier)),
		products:     api.NewProductRouter(api.NewProductController(products)),
		orderService: orders,
		fina:         fina,
		carrier:      carrier,
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// placedOrder creates an order through the service layer so payment and
// shipment handler tests have something to reference.
func (f *participantFixture) placedOrder(t *testing.T) string {
	t.Helper()
	o, err := f.orderService.Create(context.Background(), orderSvc.CreateOrderRequest{
		CustomerName:    "Ana Horvat",
		CustomerEmail:   "ana@example.com",
		ShippingAddress: "Ilica 1, 10000 Zagreb",
		Items:           []orderSvc.ItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	return o.ID.String()
}

func validOrderBody() api.CreateOrderRequest {
	return api.CreateOrderRequest{
		CustomerName:    "Ana Horvat",
		CustomerEmail:   "ana@example.com",
		ShippingAddress: "Ilica 1, 10000 Zagreb",
		Items:           []api.OrderItemRequest{{ProductID: 1, Quantity: 2}},
	}
}
