package shipment

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/domain/order"
	"github.com/abilic/ordergate/internal/domain/shipment"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderReader fetches orders so shipments pick up the customer and address
// from the order instead of the request.
type OrderReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
}

// Service handles shipment lifecycle operations for both coordination
// strategies.
type Service struct {
	repo    shipment.Repository
	orders  OrderReader
	carrier *CarrierGateway
	logger  zerolog.Logger
}

// NewService creates a new shipment Service.
func NewService(repo shipment.Repository, orders OrderReader, carrier *CarrierGateway, logger zerolog.Logger) *Service {
	return &Service{repo: repo, orders: orders, carrier: carrier, logger: logger}
}

// CreateShipmentRequest holds the input for creating or preparing a shipment.
type CreateShipmentRequest struct {
	OrderID               uuid.UUID
	Carrier               string
	EstimatedDeliveryDate time.Time
}

// Create books the shipment with the carrier immediately: the shipment is
// persisted preparing, with a tracking number already allocated.
func (s *Service) Create(ctx context.Context, req CreateShipmentRequest) (*shipment.Shipment, error) {
	o, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	sh := shipment.NewPreparingShipment(
		req.OrderID, o.CustomerName, o.CustomerEmail, o.ShippingAddress,
		req.Carrier, req.EstimatedDeliveryDate,
	)
	if err := s.repo.Create(ctx, sh); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("shipment_id", sh.ID.String()).
		Str("order_id", req.OrderID.String()).
		Str("tracking_number", sh.TrackingNumber).
		Msg("created shipment")
	return sh, nil
}

// Prepare reserves carrier capacity without allocating a tracking number.
// The shipment is confirmed only when the coordinator commits.
func (s *Service) Prepare(ctx context.Context, req CreateShipmentRequest) (*shipment.Shipment, error) {
	s.logger.Info().Str("order_id", req.OrderID.String()).Msg("reserving shipment capacity")

	o, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	sh := shipment.NewReservedShipment(
		req.OrderID, o.CustomerName, o.CustomerEmail, o.ShippingAddress,
		req.Carrier, req.EstimatedDeliveryDate,
	)
	if err := s.repo.Create(ctx, sh); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("shipment_id", sh.ID.String()).
		Str("status", string(sh.Status)).
		Msg("shipment reserved")
	return sh, nil
}

// validate runs the shared checks: one shipment per order, carrier available,
// address acceptable, capacity left. Returns the order for addressing.
func (s *Service) validate(ctx context.Context, req CreateShipmentRequest) (*order.Order, error) {
	if _, err := s.repo.GetByOrderID(ctx, req.OrderID); err == nil {
		return nil, domainErrors.ErrDuplicateShipment
	} else if !errors.Is(err, domainErrors.ErrShipmentNotFound) {
		return nil, err
	}

	o, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if !s.carrier.Available(req.Carrier) {
		return nil, domainErrors.NewDomainError(
			"carrier_unavailable",
			"carrier "+req.Carrier+" is unavailable",
			domainErrors.ErrCarrierUnavailable,
		)
	}
	if !s.carrier.ValidateAddress(req.Carrier, o.ShippingAddress) {
		return nil, domainErrors.NewDomainError(
			"invalid_address",
			"invalid shipping address for carrier "+req.Carrier,
			domainErrors.ErrInvalidAddress,
		)
	}
	if !s.carrier.HasCapacity(req.Carrier) {
		return nil, domainErrors.NewDomainError(
			"carrier_capacity",
			"carrier "+req.Carrier+" is at full capacity",
			domainErrors.ErrCarrierUnavailable,
		)
	}
	return o, nil
}

// GetByID retrieves a shipment by its ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByOrderID retrieves the shipment for an order.
func (s *Service) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*shipment.Shipment, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}

// Commit confirms a reserved shipment: tracking is allocated and the shipment
// moves to preparing. Committing a shipment in any other state is a state
// machine violation.
func (s *Service) Commit(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.Status != shipment.StatusReserved {
		return nil, domainErrors.NewDomainError(
			"invalid_commit",
			"cannot commit shipment in status "+string(sh.Status),
			domainErrors.ErrInvalidStateTransition,
		)
	}
	if err := sh.Confirm(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, sh); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("shipment_id", id.String()).
		Str("tracking_number", sh.TrackingNumber).
		Msg("shipment confirmed")
	return sh, nil
}

// Abort releases a reserved shipment. Aborting a shipment that is not
// reserved is a no-op so the coordinator can abort safely after partial
// failures.
func (s *Service) Abort(ctx context.Context, id uuid.UUID) error {
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sh.Status != shipment.StatusReserved {
		s.logger.Warn().
			Str("shipment_id", id.String()).
			Str("status", string(sh.Status)).
			Msg("abort skipped, shipment is not reserved")
		return nil
	}

	if err := sh.MarkFailed(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, sh); err != nil {
		return err
	}

	s.logger.Info().Str("shipment_id", id.String()).Msg("shipment reservation released")
	return nil
}

// Cancel compensates a created shipment by deleting the row.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Warn().Str("shipment_id", id.String()).Msg("compensation: cancelled shipment")
	return nil
}
