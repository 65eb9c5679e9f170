package order

import (
	"context"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/domain/order"
	"github.com/abilic/ordergate/internal/domain/product"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StockManager is the slice of the product participant the order participant
// needs: reserving and releasing stock, and pricing order lines.
type StockManager interface {
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
	ReserveStock(ctx context.Context, items []product.StockItem) error
	ReleaseStock(ctx context.Context, items []product.StockItem) error
}

// Service handles order lifecycle operations for both coordination strategies.
type Service struct {
	repo   order.Repository
	stock  StockManager
	logger zerolog.Logger
}

// NewService creates a new order Service.
func NewService(repo order.Repository, stock StockManager, logger zerolog.Logger) *Service {
	return &Service{repo: repo, stock: stock, logger: logger}
}

// CreateOrderRequest holds the input for creating or preparing an order.
type CreateOrderRequest struct {
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	Items           []ItemRequest
}

// ItemRequest is one requested order line. Pricing comes from the catalog.
type ItemRequest struct {
	ProductID int64
	Quantity  int
}

// Create reserves stock and persists a confirmed order with totals priced
// from the catalog. If anything fails after the reservation, the reserved
// stock is released before the error is returned.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	return s.create(ctx, req, order.StatusConfirmed)
}

// Prepare reserves stock and persists the order in prepared state. The order
// is confirmed only when the coordinator commits.
func (s *Service) Prepare(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	s.logger.Info().Str("customer_email", req.CustomerEmail).Msg("preparing order and reserving stock")
	return s.create(ctx, req, order.StatusPrepared)
}

func (s *Service) create(ctx context.Context, req CreateOrderRequest, status order.OrderStatus) (*order.Order, error) {
	stockItems := stockItems(req.Items)

	if err := s.stock.ReserveStock(ctx, stockItems); err != nil {
		return nil, err
	}

	o, err := s.buildOrder(ctx, req, status)
	if err == nil {
		err = s.repo.Create(ctx, o)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("order creation failed, releasing reserved stock")
		_ = s.stock.ReleaseStock(ctx, stockItems)
		return nil, err
	}

	s.logger.Info().
		Str("order_id", o.ID.String()).
		Str("status", string(o.Status)).
		Int64("total_amount_cents", o.TotalAmountCents).
		Msg("created order")
	return o, nil
}

func (s *Service) buildOrder(ctx context.Context, req CreateOrderRequest, status order.OrderStatus) (*order.Order, error) {
	items := make([]order.Item, 0, len(req.Items))
	for _, item := range req.Items {
		p, err := s.stock.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, order.Item{
			ProductID:      p.ID,
			ProductName:    p.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: p.PriceCents,
		})
	}
	return order.NewOrder(req.CustomerName, req.CustomerEmail, req.ShippingAddress, items, status)
}

// GetByID retrieves an order by its ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Commit confirms a prepared order. Committing an order in any other state
// is a state machine violation.
func (s *Service) Commit(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != order.StatusPrepared {
		return nil, domainErrors.NewDomainError(
			"invalid_commit",
			"cannot commit order in status "+string(o.Status),
			domainErrors.ErrInvalidStateTransition,
		)
	}
	if err := o.MarkConfirmed(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order committed")
	return o, nil
}

// Abort cancels a prepared order and releases its stock. Aborting an order
// that is not prepared is a no-op so the coordinator can abort safely after
// partial failures.
func (s *Service) Abort(ctx context.Context, id uuid.UUID) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.Status != order.StatusPrepared {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("status", string(o.Status)).
			Msg("abort skipped, order is not prepared")
		return nil
	}

	_ = s.stock.ReleaseStock(ctx, orderStockItems(o))

	if err := o.MarkCancelled(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return err
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order reservation released")
	return nil
}

// Cancel compensates a created order: stock is released and the row deleted.
// Release failures are logged and the deletion still happens.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Info().Str("order_id", id.String()).Msg("releasing stock for cancelled order")
	if err := s.stock.ReleaseStock(ctx, orderStockItems(o)); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to release stock")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Warn().Str("order_id", id.String()).Msg("compensation: cancelled order")
	return nil
}

func stockItems(items []ItemRequest) []product.StockItem {
	out := make([]product.StockItem, 0, len(items))
	for _, item := range items {
		out = append(out, product.StockItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return out
}

func orderStockItems(o *order.Order) []product.StockItem {
	out := make([]product.StockItem, 0, len(o.Items))
	for _, item := range o.Items {
		out = append(out, product.StockItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return out
}
