package api

import (
	"time"

	"github.com/abilic/ordergate/internal/domain/order"
	"github.com/abilic/ordergate/internal/domain/payment"
	"github.com/abilic/ordergate/internal/domain/product"
	"github.com/abilic/ordergate/internal/domain/shipment"
)

// --- Request DTOs ---
// DTOs handle HTTP/JSON concerns (string IDs, validation tags). Controllers
// convert them to service layer inputs before calling business logic.

// CreateOrderRequest holds the input for creating or preparing an order.
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name" validate:"required"`
	CustomerEmail   string             `json:"customer_email" validate:"required,email"`
	ShippingAddress string             `json:"shipping_address" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// CreatePaymentRequest holds the input for creating or preparing a payment.
// The amount is priced from the referenced order, never from the request.
type CreatePaymentRequest struct {
	OrderID            string `json:"order_id" validate:"required,uuid"`
	CustomerName       string `json:"customer_name" validate:"required"`
	CustomerEmail      string `json:"customer_email" validate:"required,email"`
	PaymentMethod      string `json:"payment_method" validate:"required,oneof=CREDIT_CARD DEBIT_CARD BANK_TRANSFER CASH_ON_DELIVERY"`
	PaymentProvider    string `json:"payment_provider,omitempty"`
	CardLastFourDigits string `json:"card_last_four_digits,omitempty"`
}

// CreateShipmentRequest holds the input for creating or preparing a shipment.
type CreateShipmentRequest struct {
	OrderID               string     `json:"order_id" validate:"required,uuid"`
	Carrier               string     `json:"carrier" validate:"required"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
}

// StockRequest lists the (product, quantity) pairs for a stock operation.
type StockRequest struct {
	Items []StockItemRequest `json:"items" validate:"required,min=1,dive"`
}

// StockItemRequest is one stock line.
type StockItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// ConfigToggleRequest flips one fault-injection toggle.
type ConfigToggleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// --- Response DTOs ---

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID               string              `json:"id"`
	CustomerName     string              `json:"customer_name"`
	CustomerEmail    string              `json:"customer_email"`
	ShippingAddress  string              `json:"shipping_address"`
	Items            []OrderItemResponse `json:"items"`
	TotalAmountCents int64               `json:"total_amount_cents"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderItemResponse is one priced order line.
type OrderItemResponse struct {
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID                 string     `json:"id"`
	OrderID            string     `json:"order_id"`
	CustomerName       string     `json:"customer_name"`
	CustomerEmail      string     `json:"customer_email"`
	AmountCents        int64      `json:"amount_cents"`
	PaymentMethod      string     `json:"payment_method"`
	PaymentProvider    string     `json:"payment_provider"`
	CardLastFourDigits string     `json:"card_last_four_digits,omitempty"`
	TransactionID      string     `json:"transaction_id"`
	Status             string     `json:"status"`
	FailureReason      string     `json:"failure_reason,omitempty"`
	ProcessedAt        *time.Time `json:"processed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ShipmentResponse represents a shipment in API responses.
type ShipmentResponse struct {
	ID                    string     `json:"id"`
	OrderID               string     `json:"order_id"`
	CustomerName          string     `json:"customer_name"`
	CustomerEmail         string     `json:"customer_email"`
	ShippingAddress       string     `json:"shipping_address"`
	Carrier               string     `json:"carrier"`
	TrackingNumber        string     `json:"tracking_number,omitempty"`
	EstimatedDeliveryDate time.Time  `json:"estimated_delivery_date"`
	ActualDeliveryDate    *time.Time `json:"actual_delivery_date,omitempty"`
	Status                string     `json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	PriceCents    int64     `json:"price_cents"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ConfigSettingResponse echoes a toggle change.
type ConfigSettingResponse struct {
	Setting string `json:"setting"`
	Enabled bool   `json:"enabled"`
}

// FinaStatusResponse reports the payment fault-injection toggles.
type FinaStatusResponse struct {
	AvailabilityEnabled     bool `json:"fina_availability_enabled"`
	PreAuthorizationEnabled bool `json:"pre_authorization_enabled"`
}

// CarrierStatusResponse reports the shipping fault-injection toggles.
type CarrierStatusResponse struct {
	AvailabilityEnabled bool     `json:"carrier_availability_enabled"`
	CapacityEnabled     bool     `json:"carrier_capacity_enabled"`
	SupportedCarriers   []string `json:"supported_carriers"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Conversion helpers ---

// FromOrder converts a domain order to an API response.
func FromOrder(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents,
		})
	}
	return &OrderResponse{
		ID:               o.ID.String(),
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		ShippingAddress:  o.ShippingAddress,
		Items:            items,
		TotalAmountCents: o.TotalAmountCents,
		Status:           string(o.Status),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// FromPayment converts a domain payment to an API response.
func FromPayment(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                 p.ID.String(),
		OrderID:            p.OrderID.String(),
		CustomerName:       p.PaidCustomerName,
		CustomerEmail:      p.PaidCustomerEmail,
		AmountCents:        p.PaidAmountCents,
		PaymentMethod:      string(p.PaymentMethod),
		PaymentProvider:    p.PaymentProvider,
		CardLastFourDigits: p.CardLastFourDigits,
		TransactionID:      p.TransactionID,
		Status:             string(p.Status),
		FailureReason:      p.FailureReason,
		ProcessedAt:        p.ProcessedAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// FromShipment converts a domain shipment to an API response.
func FromShipment(s *shipment.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:                    s.ID.String(),
		OrderID:               s.OrderID.String(),
		CustomerName:          s.CustomerName,
		CustomerEmail:         s.CustomerEmail,
		ShippingAddress:       s.ShippingAddress,
		Carrier:               s.Carrier,
		TrackingNumber:        s.TrackingNumber,
		EstimatedDeliveryDate: s.EstimatedDeliveryDate,
		ActualDeliveryDate:    s.ActualDeliveryDate,
		Status:                string(s.Status),
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

// FromProduct converts a domain product to an API response.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		PriceCents:    p.PriceCents,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
