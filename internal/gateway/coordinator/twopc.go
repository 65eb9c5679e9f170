package coordinator

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/gateway/client"
	"github.com/abilic/ordergate/internal/observability"
	"github.com/abilic/ordergate/internal/participant/api"
	"github.com/abilic/ordergate/pkg/retry"
	"github.com/rs/zerolog"
)

// TwoPhaseCoordinator places orders with the resource-locking strategy:
// every participant first reserves its resources in a prepared state, and
// only when all three prepares succeed does the commit sweep finalize them.
// A prepare failure aborts the already-prepared participants in reverse
// order.
type TwoPhaseCoordinator struct {
	orders      client.OrderClient
	payments    client.PaymentClient
	shipments   client.ShipmentClient
	metrics     *observability.Metrics
	logger      zerolog.Logger
	commitRetry retry.Config
}

func NewTwoPhaseCoordinator(
	orders client.OrderClient,
	payments client.PaymentClient,
	shipments client.ShipmentClient,
	metrics *observability.Metrics,
	logger zerolog.Logger,
	commitRetry retry.Config,
) *TwoPhaseCoordinator {
	return &TwoPhaseCoordinator{
		orders:      orders,
		payments:    payments,
		shipments:   shipments,
		metrics:     metrics,
		logger:      logger,
		commitRetry: commitRetry,
	}
}

// PlaceOrder runs prepare across all participants, then commit. The response
// is always non-nil; Success says whether the order went through.
func (c *TwoPhaseCoordinator) PlaceOrder(ctx context.Context, req PlaceOrderRequest) *PlaceOrderResponse {
	start := time.Now()
	txn := &TransactionContext{}

	if err := c.prepare(ctx, req, txn); err != nil {
		compensations := c.abort(ctx, txn)
		txn.TotalLatency = time.Since(start)

		c.logger.Warn().Err(err).
			Int("compensations", compensations).
			Msg("prepare phase failed, transaction aborted")
		c.observeTransaction("2pc", "failure", txn.TotalLatency)
		c.metrics.CompensationsTotal.WithLabelValues("2pc").Add(float64(compensations))

		resp := &PlaceOrderResponse{
			Success:       false,
			Message:       "Order preparation failed - transaction aborted",
			ErrorDetails:  failureSummary(err),
			Compensations: compensations,
			Timestamp:     time.Now().UTC(),
		}
		txn.fill(resp)
		return resp
	}

	if err := c.commit(ctx, txn); err != nil {
		txn.TotalLatency = time.Since(start)

		c.logger.Error().Err(err).Msg("commit phase failed")
		c.observeTransaction("2pc", "failure", txn.TotalLatency)

		resp := &PlaceOrderResponse{
			Success:      false,
			Message:      "Failed to place order",
			ErrorDetails: failureSummary(err),
			Timestamp:    time.Now().UTC(),
		}
		txn.fill(resp)
		return resp
	}

	txn.Committed = true
	txn.TotalLatency = time.Since(start)

	c.logger.Info().
		Str("order_id", txn.Order.ID).
		Str("payment_id", txn.Payment.ID).
		Str("shipment_id", txn.Shipment.ID).
		Dur("total_latency", txn.TotalLatency).
		Msg("order placed")
	c.observeTransaction("2pc", "success", txn.TotalLatency)

	resp := &PlaceOrderResponse{
		Success:   true,
		Message:   "Order placed successfully",
		Timestamp: time.Now().UTC(),
	}
	txn.fill(resp)
	return resp
}

// prepare reserves resources on each participant in sequence and flags the
// ones that succeeded so abort knows which need unwinding.
func (c *TwoPhaseCoordinator) prepare(ctx context.Context, req PlaceOrderRequest, txn *TransactionContext) error {
	stepStart := time.Now()
	order, err := c.orders.Prepare(ctx, orderRequest(req))
	txn.OrderLatency = time.Since(stepStart)
	c.observeStep("2pc", "order", txn.OrderLatency)
	if err != nil {
		txn.PrepareLatency = txn.OrderLatency
		return err
	}
	txn.Order = order
	txn.OrderPrepared = true

	stepStart = time.Now()
	payment, err := c.payments.Prepare(ctx, paymentRequest(req, order.ID))
	txn.PaymentLatency = time.Since(stepStart)
	c.observeStep("2pc", "payment", txn.PaymentLatency)
	if err != nil {
		txn.PrepareLatency = txn.OrderLatency + txn.PaymentLatency
		return err
	}
	txn.Payment = payment
	txn.PaymentPrepared = true

	stepStart = time.Now()
	shipment, err := c.shipments.Prepare(ctx, shipmentRequest(req, order.ID))
	txn.ShippingLatency = time.Since(stepStart)
	c.observeStep("2pc", "shipment", txn.ShippingLatency)
	if err != nil {
		txn.PrepareLatency = txn.OrderLatency + txn.PaymentLatency + txn.ShippingLatency
		return err
	}
	txn.Shipment = shipment
	txn.ShipmentPrepared = true

	txn.PrepareLatency = txn.OrderLatency + txn.PaymentLatency + txn.ShippingLatency
	return nil
}

// commit finalizes every prepared participant. Transient transport failures
// are retried; business failures fail the commit immediately.
func (c *TwoPhaseCoordinator) commit(ctx context.Context, txn *TransactionContext) error {
	commitStart := time.Now()
	defer func() { txn.CommitLatency = time.Since(commitStart) }()

	order, err := commitWithRetry(ctx, c.commitRetry, func() (*api.OrderResponse, error) {
		return c.orders.Commit(ctx, txn.Order.ID)
	})
	if err != nil {
		return err
	}
	txn.Order = order

	payment, err := commitWithRetry(ctx, c.commitRetry, func() (*api.PaymentResponse, error) {
		return c.payments.Commit(ctx, txn.Payment.ID)
	})
	if err != nil {
		return err
	}
	txn.Payment = payment

	shipment, err := commitWithRetry(ctx, c.commitRetry, func() (*api.ShipmentResponse, error) {
		return c.shipments.Commit(ctx, txn.Shipment.ID)
	})
	if err != nil {
		return err
	}
	txn.Shipment = shipment

	return nil
}

// abort unwinds prepared participants in reverse order and returns how many
// abort calls were issued. Abort failures are logged by the clients, never
// propagated; every participant on its prepared path must get the signal.
func (c *TwoPhaseCoordinator) abort(ctx context.Context, txn *TransactionContext) int {
	abortStart := time.Now()
	defer func() { txn.AbortLatency = time.Since(abortStart) }()

	compensations := 0
	if txn.ShipmentPrepared {
		c.shipments.Abort(ctx, txn.Shipment.ID)
		compensations++
	}
	if txn.PaymentPrepared {
		c.payments.Abort(ctx, txn.Payment.ID)
		compensations++
	}
	if txn.OrderPrepared {
		c.orders.Abort(ctx, txn.Order.ID)
		compensations++
	}
	return compensations
}

// commitWithRetry retries fn on transport failures only.
func commitWithRetry[T any](ctx context.Context, cfg retry.Config, fn func() (T, error)) (T, error) {
	return retry.DoWithResult(ctx, cfg, func() (T, error) {
		out, err := fn()
		if err != nil && !errors.Is(err, domainErrors.ErrParticipantUnavailable) {
			var zero T
			return zero, retry.Unrecoverable(err)
		}
		return out, err
	})
}

func (c *TwoPhaseCoordinator) observeStep(strategy, step string, d time.Duration) {
	c.metrics.StepDuration.WithLabelValues(strategy, step).Observe(d.Seconds())
}

func (c *TwoPhaseCoordinator) observeTransaction(strategy, outcome string, d time.Duration) {
	c.metrics.TransactionsTotal.WithLabelValues(strategy, outcome).Inc()
	c.metrics.TransactionDuration.WithLabelValues(strategy, outcome).Observe(d.Seconds())
}
