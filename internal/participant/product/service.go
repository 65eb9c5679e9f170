package product

import (
	"context"
	"fmt"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/domain/product"
	"github.com/rs/zerolog"
)

// Service owns the stock counters. Reserve is a guarded read-then-decrement;
// the check and the write are separate repository calls, so two concurrent
// reservations can both pass the check. Release increments unconditionally.
type Service struct {
	repo   product.Repository
	logger zerolog.Logger
}

// NewService creates a new product Service.
func NewService(repo product.Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetProduct retrieves a product by its ID.
func (s *Service) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ValidateStock checks availability for every item without mutating anything.
func (s *Service) ValidateStock(ctx context.Context, items []product.StockItem) error {
	s.logger.Info().Int("items", len(items)).Msg("validating stock availability")

	for _, item := range items {
		p, err := s.repo.GetByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if p.StockQuantity < item.Quantity {
			s.logger.Warn().
				Int64("product_id", p.ID).
				Int("requested", item.Quantity).
				Int("available", p.StockQuantity).
				Msg("insufficient stock")
			return insufficientStock(p.ID, item.Quantity, p.StockQuantity)
		}
	}
	return nil
}

// ReserveStock decrements stock for every item, failing on the first item that
// cannot be satisfied. The reservation is all-or-nothing: items already
// decremented in the same call are released before the error is returned.
func (s *Service) ReserveStock(ctx context.Context, items []product.StockItem) error {
	s.logger.Info().Int("items", len(items)).Msg("reserving stock")

	reserved := make([]product.StockItem, 0, len(items))
	for _, item := range items {
		p, err := s.repo.GetByID(ctx, item.ProductID)
		if err != nil {
			_ = s.ReleaseStock(ctx, reserved)
			return err
		}
		if p.StockQuantity < item.Quantity {
			s.logger.Error().
				Int64("product_id", p.ID).
				Int("requested", item.Quantity).
				Int("available", p.StockQuantity).
				Msg("insufficient stock during reservation")
			_ = s.ReleaseStock(ctx, reserved)
			return insufficientStock(p.ID, item.Quantity, p.StockQuantity)
		}

		p.StockQuantity -= item.Quantity
		if err := s.repo.Update(ctx, p); err != nil {
			_ = s.ReleaseStock(ctx, reserved)
			return err
		}
		reserved = append(reserved, item)

		s.logger.Info().
			Int64("product_id", p.ID).
			Int("reserved", item.Quantity).
			Int("remaining", p.StockQuantity).
			Msg("reserved stock")
	}
	return nil
}

// ReleaseStock increments stock for every item. Failures on individual items
// are logged and skipped so one missing product does not block the rest of a
// rollback.
func (s *Service) ReleaseStock(ctx context.Context, items []product.StockItem) error {
	s.logger.Info().Int("items", len(items)).Msg("releasing stock")

	for _, item := range items {
		p, err := s.repo.GetByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Error().Err(err).
				Int64("product_id", item.ProductID).
				Msg("failed to release stock")
			continue
		}

		p.StockQuantity += item.Quantity
		if err := s.repo.Update(ctx, p); err != nil {
			s.logger.Error().Err(err).
				Int64("product_id", item.ProductID).
				Msg("failed to release stock")
			continue
		}

		s.logger.Info().
			Int64("product_id", p.ID).
			Int("released", item.Quantity).
			Int("stock", p.StockQuantity).
			Msg("released stock")
	}
	return nil
}

func insufficientStock(productID int64, requested, available int) error {
	return domainErrors.NewDomainError(
		"insufficient_stock",
		fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
			productID, requested, available),
		domainErrors.ErrInsufficientStock,
	)
}
