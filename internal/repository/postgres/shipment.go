package postgres

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/domain/shipment"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ShipmentRepository implements shipment.Repository using PostgreSQL.
type ShipmentRepository struct {
	pool *pgxpool.Pool
}

// NewShipmentRepository creates a new ShipmentRepository.
func NewShipmentRepository(pool *pgxpool.Pool) *ShipmentRepository {
	return &ShipmentRepository{pool: pool}
}

const shipmentColumns = `id, order_id, customer_name, customer_email,
	shipping_address, carrier, tracking_number, estimated_delivery_date,
	actual_delivery_date, status, created_at, updated_at`

// Create inserts a new shipment. A unique index on order_id enforces the
// one-shipment-per-order rule.
func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO shipments
		 (id, order_id, customer_name, customer_email,
		  shipping_address, carrier, tracking_number, estimated_delivery_date,
		  actual_delivery_date, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		s.ID, s.OrderID, s.CustomerName, s.CustomerEmail,
		s.ShippingAddress, s.Carrier, s.TrackingNumber, s.EstimatedDeliveryDate,
		s.ActualDeliveryDate, string(s.Status), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrDuplicateShipment
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByID retrieves a shipment by its ID.
func (r *ShipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	return r.scanShipment(r.pool.QueryRow(ctx,
		`SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id))
}

// GetByOrderID retrieves the shipment for an order.
func (r *ShipmentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*shipment.Shipment, error) {
	return r.scanShipment(r.pool.QueryRow(ctx,
		`SELECT `+shipmentColumns+` FROM shipments WHERE order_id = $1`, orderID))
}

// Update persists a modified shipment.
func (r *ShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE shipments
		 SET status = $2, tracking_number = $3, actual_delivery_date = $4, updated_at = $5
		 WHERE id = $1`,
		s.ID, string(s.Status), s.TrackingNumber, s.ActualDeliveryDate, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrShipmentNotFound
	}
	return nil
}

// Delete removes a shipment (saga compensation).
func (r *ShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrShipmentNotFound
	}
	return nil
}

func (r *ShipmentRepository) scanShipment(row pgx.Row) (*shipment.Shipment, error) {
	var (
		s      shipment.Shipment
		status string
	)
	err := row.Scan(
		&s.ID, &s.OrderID, &s.CustomerName, &s.CustomerEmail,
		&s.ShippingAddress, &s.Carrier, &s.TrackingNumber, &s.EstimatedDeliveryDate,
		&s.ActualDeliveryDate, &status, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainErrors.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select shipment: %w", err)
	}
	s.Status = shipment.ShipmentStatus(status)
	return &s, nil
}
