package shipment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence operations the shipment service needs.
// Delete exists because saga cancellation removes the shipment row outright.
type Repository interface {
	Create(ctx context.Context, s *Shipment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*Shipment, error)
	Update(ctx context.Context, s *Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
