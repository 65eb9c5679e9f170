package order

import (
	"time"

	"github.com/abilic/ordergate/internal/domain/errors"
	"github.com/google/uuid"
)

// OrderStatus represents the order status in the state machine
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusPrepared   OrderStatus = "PREPARED"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// Order represents a customer order entity
type Order struct {
	ID               uuid.UUID
	CustomerName     string
	CustomerEmail    string
	ShippingAddress  string
	Items            []Item
	TotalAmountCents int64
	Status           OrderStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Item is a single order line with the unit price snapshotted at order time.
type Item struct {
	ProductID      int64
	ProductName    string
	Quantity       int
	UnitPriceCents int64
	SubtotalCents  int64
}

// NewOrder creates an order in the given initial status with totals computed
// from the priced items.
func NewOrder(customerName, customerEmail, shippingAddress string, items []Item, status OrderStatus) (*Order, error) {
	if customerName == "" || customerEmail == "" {
		return nil, errors.ErrInvalidInput
	}
	if len(items) == 0 {
		return nil, errors.NewValidationError("items", "at least one order item is required")
	}

	var total int64
	for i := range items {
		items[i].SubtotalCents = items[i].UnitPriceCents * int64(items[i].Quantity)
		total += items[i].SubtotalCents
	}

	now := time.Now()
	return &Order{
		ID:               uuid.New(),
		CustomerName:     customerName,
		CustomerEmail:    customerEmail,
		ShippingAddress:  shippingAddress,
		Items:            items,
		TotalAmountCents: total,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// CanTransitionTo checks if the order can transition to the given status
func (o *Order) CanTransitionTo(newStatus OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		StatusPending: {
			StatusPrepared,
			StatusConfirmed,
			StatusCancelled,
		},
		StatusPrepared: {
			StatusConfirmed,
			StatusCancelled,
		},
		StatusConfirmed: {
			StatusProcessing,
			StatusCancelled,
		},
		StatusProcessing: {
			StatusShipped,
		},
		StatusShipped: {
			StatusDelivered,
		},
		StatusDelivered: {}, // Terminal state
		StatusCancelled: {}, // Terminal state
	}

	allowed, exists := transitions[o.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

// TransitionTo transitions the order to a new status
func (o *Order) TransitionTo(newStatus OrderStatus) error {
	if !o.CanTransitionTo(newStatus) {
		return errors.NewDomainError(
			"invalid_transition",
			"cannot transition order from "+string(o.Status)+" to "+string(newStatus),
			errors.ErrInvalidStateTransition,
		)
	}
	o.Status = newStatus
	o.UpdatedAt = time.Now()
	return nil
}

// MarkConfirmed transitions the order to confirmed status
func (o *Order) MarkConfirmed() error {
	return o.TransitionTo(StatusConfirmed)
}

// MarkCancelled transitions the order to cancelled status
func (o *Order) MarkCancelled() error {
	return o.TransitionTo(StatusCancelled)
}

// IsTerminal checks if the order is in a terminal state
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}
