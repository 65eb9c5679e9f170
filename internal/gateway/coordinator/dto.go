package coordinator

import (
	"errors"
	"time"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/participant/api"
)

// PlaceOrderRequest is the single input for both coordination strategies. It
// carries everything the three participant calls need.
type PlaceOrderRequest struct {
	CustomerName          string                 `json:"customer_name" validate:"required"`
	CustomerEmail         string                 `json:"customer_email" validate:"required,email"`
	ShippingAddress       string                 `json:"shipping_address" validate:"required"`
	Items                 []api.OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod         string                 `json:"payment_method" validate:"required,oneof=CREDIT_CARD DEBIT_CARD BANK_TRANSFER CASH_ON_DELIVERY"`
	PaymentProvider       string                 `json:"payment_provider,omitempty"`
	CardLastFourDigits    string                 `json:"card_last_four_digits,omitempty"`
	Carrier               string                 `json:"carrier" validate:"required"`
	EstimatedDeliveryDate *time.Time             `json:"estimated_delivery_date,omitempty"`
}

// PlaceOrderResponse reports the outcome of a place-order transaction,
// including per-step latencies and how many compensations ran on failure.
type PlaceOrderResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ErrorDetails string `json:"error_details,omitempty"`

	OrderID          string `json:"order_id,omitempty"`
	OrderStatus      string `json:"order_status,omitempty"`
	PaymentID        string `json:"payment_id,omitempty"`
	PaymentStatus    string `json:"payment_status,omitempty"`
	TransactionID    string `json:"transaction_id,omitempty"`
	ShipmentID       string `json:"shipment_id,omitempty"`
	ShipmentStatus   string `json:"shipment_status,omitempty"`
	TrackingNumber   string `json:"tracking_number,omitempty"`
	TotalAmountCents int64  `json:"total_amount_cents,omitempty"`

	Compensations int `json:"compensations"`

	OrderLatencyMS    int64 `json:"order_latency_ms,omitempty"`
	PaymentLatencyMS  int64 `json:"payment_latency_ms,omitempty"`
	ShippingLatencyMS int64 `json:"shipping_latency_ms,omitempty"`
	PrepareLatencyMS  int64 `json:"prepare_latency_ms,omitempty"`
	CommitLatencyMS   int64 `json:"commit_latency_ms,omitempty"`
	AbortLatencyMS    int64 `json:"abort_latency_ms,omitempty"`
	TotalLatencyMS    int64 `json:"total_latency_ms"`

	Timestamp time.Time `json:"timestamp"`
}

// orderRequest builds the order participant payload.
func orderRequest(req PlaceOrderRequest) api.CreateOrderRequest {
	return api.CreateOrderRequest{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Items:           req.Items,
	}
}

// paymentRequest builds the payment participant payload for an order.
func paymentRequest(req PlaceOrderRequest, orderID string) api.CreatePaymentRequest {
	return api.CreatePaymentRequest{
		OrderID:            orderID,
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		PaymentMethod:      req.PaymentMethod,
		PaymentProvider:    req.PaymentProvider,
		CardLastFourDigits: req.CardLastFourDigits,
	}
}

// shipmentRequest builds the shipping participant payload for an order.
func shipmentRequest(req PlaceOrderRequest, orderID string) api.CreateShipmentRequest {
	out := api.CreateShipmentRequest{
		OrderID: orderID,
		Carrier: req.Carrier,
	}
	if req.EstimatedDeliveryDate != nil {
		out.EstimatedDeliveryDate = req.EstimatedDeliveryDate
	}
	return out
}

// failureSummary condenses a participant failure into the short operator
// message surfaced in place-order responses.
func failureSummary(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrFinaUnavailable):
		return "FINA service unavailable"
	case errors.Is(err, domainErrors.ErrCarrierUnavailable):
		return "Shipping capacity unavailable"
	default:
		return "Unexpected error: " + err.Error()
	}
}
