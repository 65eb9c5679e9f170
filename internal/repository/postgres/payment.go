package postgres

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository implements payment.Repository using PostgreSQL.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const paymentColumns = `id, order_id, paid_customer_name, paid_customer_email,
	paid_amount_cents, payment_method, payment_provider, card_last_four_digits,
	transaction_id, status, failure_reason, processed_at, created_at, updated_at`

// Create inserts a new payment. A unique index on order_id enforces the
// one-payment-per-order rule at the storage layer too.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payments
		 (id, order_id, paid_customer_name, paid_customer_email,
		  paid_amount_cents, payment_method, payment_provider, card_last_four_digits,
		  transaction_id, status, failure_reason, processed_at, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		p.ID, p.OrderID, p.PaidCustomerName, p.PaidCustomerEmail,
		p.PaidAmountCents, string(p.PaymentMethod), p.PaymentProvider, p.CardLastFourDigits,
		p.TransactionID, string(p.Status), p.FailureReason, p.ProcessedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrDuplicatePayment
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	return r.scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
}

// GetByOrderID retrieves the payment for an order.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	return r.scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID))
}

// Update persists a modified payment.
func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payments
		 SET status = $2, transaction_id = $3, failure_reason = $4,
		     processed_at = $5, updated_at = $6
		 WHERE id = $1`,
		p.ID, string(p.Status), p.TransactionID, p.FailureReason,
		p.ProcessedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrPaymentNotFound
	}
	return nil
}

// Delete removes a payment (saga refund).
func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) scanPayment(row pgx.Row) (*payment.Payment, error) {
	var (
		p      payment.Payment
		method string
		status string
	)
	err := row.Scan(
		&p.ID, &p.OrderID, &p.PaidCustomerName, &p.PaidCustomerEmail,
		&p.PaidAmountCents, &method, &p.PaymentProvider, &p.CardLastFourDigits,
		&p.TransactionID, &status, &p.FailureReason, &p.ProcessedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainErrors.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select payment: %w", err)
	}
	p.PaymentMethod = payment.PaymentMethod(method)
	p.Status = payment.PaymentStatus(status)
	return &p, nil
}
