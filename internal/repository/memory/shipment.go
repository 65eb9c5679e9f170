package memory

import (
	"context"
	"sync"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/domain/shipment"
	"github.com/google/uuid"
)

// ShipmentRepository is an in-memory shipment.Repository.
type ShipmentRepository struct {
	mu        sync.RWMutex
	shipments map[uuid.UUID]*shipment.Shipment
}

func NewShipmentRepository() *ShipmentRepository {
	return &ShipmentRepository{shipments: make(map[uuid.UUID]*shipment.Shipment)}
}

func (r *ShipmentRepository) Create(_ context.Context, s *shipment.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.shipments[s.ID] = &cp
	return nil
}

func (r *ShipmentRepository) GetByID(_ context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.shipments[id]
	if !ok {
		return nil, domainErrors.ErrShipmentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *ShipmentRepository) GetByOrderID(_ context.Context, orderID uuid.UUID) (*shipment.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.shipments {
		if s.OrderID == orderID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrShipmentNotFound
}

func (r *ShipmentRepository) Update(_ context.Context, s *shipment.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shipments[s.ID]; !ok {
		return domainErrors.ErrShipmentNotFound
	}
	cp := *s
	r.shipments[s.ID] = &cp
	return nil
}

func (r *ShipmentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shipments[id]; !ok {
		return domainErrors.ErrShipmentNotFound
	}
	delete(r.shipments, id)
	return nil
}
