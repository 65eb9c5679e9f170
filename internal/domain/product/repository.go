package product

import "context"

// Repository defines the persistence operations the product service needs.
// Stock mutation goes through GetByID followed by Update; the sufficiency
// check and the decrement are not atomic across calls.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	Update(ctx context.Context, p *Product) error
}
