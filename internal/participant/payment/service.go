package payment

import (
	"context"
	"errors"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/domain/order"
	"github.com/abilic/ordergate/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderReader fetches orders so payments can be priced from the order total
// instead of trusting a client-supplied amount.
type OrderReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
}

// Service handles payment lifecycle operations for both coordination
// strategies.
type Service struct {
	repo   payment.Repository
	orders OrderReader
	fina   *FinancialAgency
	logger zerolog.Logger
}

// NewService creates a new payment Service.
func NewService(repo payment.Repository, orders OrderReader, fina *FinancialAgency, logger zerolog.Logger) *Service {
	return &Service{repo: repo, orders: orders, fina: fina, logger: logger}
}

// CreatePaymentRequest holds the input for creating or preparing a payment.
// The amount is always taken from the referenced order.
type CreatePaymentRequest struct {
	OrderID            uuid.UUID
	CustomerName       string
	CustomerEmail      string
	PaymentMethod      payment.PaymentMethod
	PaymentProvider    string
	CardLastFourDigits string
}

// Create charges the customer immediately and persists a completed payment.
func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (*payment.Payment, error) {
	o, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	p := payment.NewCompletedPayment(
		req.OrderID, req.CustomerName, req.CustomerEmail,
		o.TotalAmountCents, req.PaymentMethod, req.PaymentProvider, req.CardLastFourDigits,
	)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("payment_id", p.ID.String()).
		Str("order_id", p.OrderID.String()).
		Str("transaction_id", p.TransactionID).
		Msg("created payment")
	return p, nil
}

// Prepare places a hold on the funds and persists a pre-authorized payment.
// Capture happens only when the coordinator commits.
func (s *Service) Prepare(ctx context.Context, req CreatePaymentRequest) (*payment.Payment, error) {
	s.logger.Info().Str("order_id", req.OrderID.String()).Msg("pre-authorizing payment")

	o, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	p := payment.NewPreAuthorizedPayment(
		req.OrderID, req.CustomerName, req.CustomerEmail,
		o.TotalAmountCents, req.PaymentMethod, req.PaymentProvider, req.CardLastFourDigits,
	)
	if !s.fina.PreAuthorize(p.TransactionID, p.PaidAmountCents) {
		return nil, domainErrors.NewDomainError(
			"preauthorization_failed",
			"payment pre-authorization failed",
			domainErrors.ErrFinaUnavailable,
		)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("payment_id", p.ID.String()).
		Str("status", string(p.Status)).
		Msg("payment pre-authorized")
	return p, nil
}

// validate runs the shared checks: one payment per order, agency available,
// method and card details acceptable. Returns the order for pricing.
func (s *Service) validate(ctx context.Context, req CreatePaymentRequest) (*order.Order, error) {
	if _, err := s.repo.GetByOrderID(ctx, req.OrderID); err == nil {
		return nil, domainErrors.ErrDuplicatePayment
	} else if !errors.Is(err, domainErrors.ErrPaymentNotFound) {
		return nil, err
	}

	o, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if !s.fina.Available() {
		return nil, domainErrors.ErrFinaUnavailable
	}
	if !s.fina.ValidateMethod(req.PaymentMethod, req.CardLastFourDigits) {
		return nil, domainErrors.ErrInvalidPaymentMethod
	}
	return o, nil
}

// GetByID retrieves a payment by its ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByOrderID retrieves the payment for an order.
func (s *Service) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}

// Commit captures a pre-authorized payment. Committing a payment in any other
// state is a state machine violation.
func (s *Service) Commit(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != payment.StatusPreAuthorized {
		return nil, domainErrors.NewDomainError(
			"invalid_commit",
			"cannot commit payment in status "+string(p.Status),
			domainErrors.ErrInvalidStateTransition,
		)
	}
	if err := p.Capture(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("payment_id", id.String()).
		Str("transaction_id", p.TransactionID).
		Msg("payment captured")
	return p, nil
}

// Abort releases a pre-authorized hold. Aborting a payment that is not
// pre-authorized is a no-op so the coordinator can abort safely after partial
// failures.
func (s *Service) Abort(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status != payment.StatusPreAuthorized {
		s.logger.Warn().
			Str("payment_id", id.String()).
			Str("status", string(p.Status)).
			Msg("abort skipped, payment is not pre-authorized")
		return nil
	}

	if err := p.MarkCancelled("transaction aborted by coordinator"); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	s.logger.Info().Str("payment_id", id.String()).Msg("payment authorization released")
	return nil
}

// Refund compensates a captured payment by deleting the row. The row, not a
// REFUNDED status, because downstream duplicate checks go by order id and a
// retried order must be payable again.
func (s *Service) Refund(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Warn().Str("payment_id", id.String()).Msg("compensation: refunded payment")
	return p, nil
}
