package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence operations the payment service needs.
// Delete exists because saga refunds remove the payment row outright.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
