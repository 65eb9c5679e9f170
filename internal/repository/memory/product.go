package memory

import (
	"context"
	"sync"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/domain/product"
)

// ProductRepository is an in-memory product.Repository. Individual operations
// are serialized, but a read-then-update sequence spanning two calls is not.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]*product.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[int64]*product.Product)}
}

// Seed pre-populates the repository (test and lab fixtures).
func (r *ProductRepository) Seed(products ...*product.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
}

func (r *ProductRepository) Create(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id int64) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domainErrors.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepository) Update(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domainErrors.ErrProductNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}
