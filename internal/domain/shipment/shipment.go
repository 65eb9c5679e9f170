package shipment

import (
	"strings"
	"time"

	"github.com/abilic/ordergate/internal/domain/errors"
	"github.com/google/uuid"
)

// ShipmentStatus represents the shipment status in the state machine
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "PENDING"
	StatusReserved       ShipmentStatus = "RESERVED"
	StatusPreparing      ShipmentStatus = "PREPARING"
	StatusInTransit      ShipmentStatus = "IN_TRANSIT"
	StatusOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      ShipmentStatus = "DELIVERED"
	StatusFailed         ShipmentStatus = "FAILED"
	StatusReturned       ShipmentStatus = "RETURNED"
)

// TrackingPrefix prefixes every allocated tracking number.
const TrackingPrefix = "TRK-"

// Shipment represents a shipment entity
type Shipment struct {
	ID                    uuid.UUID
	OrderID               uuid.UUID
	CustomerName          string
	CustomerEmail         string
	ShippingAddress       string
	Carrier               string
	TrackingNumber        string
	EstimatedDeliveryDate time.Time
	ActualDeliveryDate    *time.Time
	Status                ShipmentStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewPreparingShipment creates a shipment already accepted by the carrier with
// a tracking number allocated (saga path).
func NewPreparingShipment(orderID uuid.UUID, customerName, customerEmail, address, carrier string, eta time.Time) *Shipment {
	s := newShipment(orderID, customerName, customerEmail, address, carrier, eta)
	s.TrackingNumber = GenerateTrackingNumber()
	s.Status = StatusPreparing
	return s
}

// NewReservedShipment creates a shipment holding carrier capacity without a
// tracking number (2PC prepare path). Tracking is allocated only at commit.
func NewReservedShipment(orderID uuid.UUID, customerName, customerEmail, address, carrier string, eta time.Time) *Shipment {
	s := newShipment(orderID, customerName, customerEmail, address, carrier, eta)
	s.Status = StatusReserved
	return s
}

func newShipment(orderID uuid.UUID, customerName, customerEmail, address, carrier string, eta time.Time) *Shipment {
	if eta.IsZero() {
		eta = time.Now().AddDate(0, 0, 7)
	}
	now := time.Now()
	return &Shipment{
		ID:                    uuid.New(),
		OrderID:               orderID,
		CustomerName:          customerName,
		CustomerEmail:         customerEmail,
		ShippingAddress:       address,
		Carrier:               carrier,
		EstimatedDeliveryDate: eta,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// GenerateTrackingNumber allocates a short uppercase tracking number.
func GenerateTrackingNumber() string {
	return TrackingPrefix + strings.ToUpper(uuid.New().String()[:8])
}

// CanTransitionTo checks if the shipment can transition to the given status
func (s *Shipment) CanTransitionTo(newStatus ShipmentStatus) bool {
	transitions := map[ShipmentStatus][]ShipmentStatus{
		StatusPending: {
			StatusReserved,
			StatusPreparing,
			StatusFailed,
		},
		StatusReserved: {
			StatusPreparing,
			StatusFailed,
		},
		StatusPreparing: {
			StatusInTransit,
			StatusFailed,
		},
		StatusInTransit: {
			StatusOutForDelivery,
			StatusReturned,
		},
		StatusOutForDelivery: {
			StatusDelivered,
			StatusReturned,
		},
		StatusDelivered: {}, // Terminal state
		StatusFailed:    {}, // Terminal state
		StatusReturned:  {},
	}

	allowed, exists := transitions[s.Status]
	if !exists {
		return false
	}
	for _, st := range allowed {
		if st == newStatus {
			return true
		}
	}
	return false
}

// TransitionTo transitions the shipment to a new status
func (s *Shipment) TransitionTo(newStatus ShipmentStatus) error {
	if !s.CanTransitionTo(newStatus) {
		return errors.NewDomainError(
			"invalid_transition",
			"cannot transition shipment from "+string(s.Status)+" to "+string(newStatus),
			errors.ErrInvalidStateTransition,
		)
	}
	s.Status = newStatus
	s.UpdatedAt = time.Now()
	if newStatus == StatusDelivered && s.ActualDeliveryDate == nil {
		now := time.Now()
		s.ActualDeliveryDate = &now
	}
	return nil
}

// Confirm finalizes a reserved shipment: the tracking number is allocated and
// the shipment moves to PREPARING.
func (s *Shipment) Confirm() error {
	if err := s.TransitionTo(StatusPreparing); err != nil {
		return err
	}
	s.TrackingNumber = GenerateTrackingNumber()
	return nil
}

// MarkFailed transitions the shipment to failed status
func (s *Shipment) MarkFailed() error {
	return s.TransitionTo(StatusFailed)
}

// IsTerminal checks if the shipment is in a terminal state
func (s *Shipment) IsTerminal() bool {
	return s.Status == StatusDelivered || s.Status == StatusFailed
}
