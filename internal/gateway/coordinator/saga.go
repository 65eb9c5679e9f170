package coordinator

import (
	"context"
	"time"

	"github.com/abilic/ordergate/internal/gateway/client"
	"github.com/abilic/ordergate/internal/observability"
	"github.com/abilic/ordergate/pkg/saga"
	"github.com/rs/zerolog"
)

// SagaCoordinator places orders with the saga strategy: each participant
// commits immediately, and a failure triggers compensations for every
// completed step in reverse order.
type SagaCoordinator struct {
	orders    client.OrderClient
	payments  client.PaymentClient
	shipments client.ShipmentClient
	metrics   *observability.Metrics
	logger    zerolog.Logger
}

func NewSagaCoordinator(
	orders client.OrderClient,
	payments client.PaymentClient,
	shipments client.ShipmentClient,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *SagaCoordinator {
	return &SagaCoordinator{
		orders:    orders,
		payments:  payments,
		shipments: shipments,
		metrics:   metrics,
		logger:    logger,
	}
}

// PlaceOrder runs the three participant steps sequentially. The response is
// always non-nil; Success says whether the order went through.
func (c *SagaCoordinator) PlaceOrder(ctx context.Context, req PlaceOrderRequest) *PlaceOrderResponse {
	start := time.Now()
	txn := &TransactionContext{}

	s := saga.New("place-order").
		AddStep(saga.Step{
			Name: "create order",
			Execute: func(ctx context.Context) error {
				stepStart := time.Now()
				order, err := c.orders.Create(ctx, orderRequest(req))
				txn.OrderLatency = time.Since(stepStart)
				c.observeStep("saga", "order", txn.OrderLatency)
				if err != nil {
					return err
				}
				txn.Order = order
				return nil
			},
			Compensate: func(ctx context.Context) {
				c.orders.Cancel(ctx, txn.Order.ID)
			},
		}).
		AddStep(saga.Step{
			Name: "process payment",
			Execute: func(ctx context.Context) error {
				stepStart := time.Now()
				payment, err := c.payments.Create(ctx, paymentRequest(req, txn.Order.ID))
				txn.PaymentLatency = time.Since(stepStart)
				c.observeStep("saga", "payment", txn.PaymentLatency)
				if err != nil {
					return err
				}
				txn.Payment = payment
				return nil
			},
			Compensate: func(ctx context.Context) {
				c.payments.Refund(ctx, txn.Payment.ID)
			},
		}).
		AddStep(saga.Step{
			Name: "create shipment",
			Execute: func(ctx context.Context) error {
				stepStart := time.Now()
				shipment, err := c.shipments.Create(ctx, shipmentRequest(req, txn.Order.ID))
				txn.ShippingLatency = time.Since(stepStart)
				c.observeStep("saga", "shipment", txn.ShippingLatency)
				if err != nil {
					return err
				}
				txn.Shipment = shipment
				return nil
			},
			Compensate: func(ctx context.Context) {
				c.shipments.Cancel(ctx, txn.Shipment.ID)
			},
		})

	failedStep, report, err := s.Execute(ctx)
	txn.TotalLatency = time.Since(start)

	if err != nil {
		c.logger.Warn().Err(err).
			Int("failed_step", failedStep).
			Int("compensations", report.Compensated).
			Strs("compensated_steps", report.Steps).
			Msg("saga rolled back")
		c.observeTransaction("saga", "failure", txn.TotalLatency)
		c.metrics.CompensationsTotal.WithLabelValues("saga").Add(float64(report.Compensated))

		resp := &PlaceOrderResponse{
			Success:       false,
			Message:       "Failed to place order",
			ErrorDetails:  failureSummary(err),
			Compensations: report.Compensated,
			Timestamp:     time.Now().UTC(),
		}
		txn.fill(resp)
		return resp
	}

	c.logger.Info().
		Str("order_id", txn.Order.ID).
		Str("payment_id", txn.Payment.ID).
		Str("shipment_id", txn.Shipment.ID).
		Dur("total_latency", txn.TotalLatency).
		Msg("order placed")
	c.observeTransaction("saga", "success", txn.TotalLatency)

	resp := &PlaceOrderResponse{
		Success:   true,
		Message:   "Order placed successfully",
		Timestamp: time.Now().UTC(),
	}
	txn.fill(resp)
	return resp
}

func (c *SagaCoordinator) observeStep(strategy, step string, d time.Duration) {
	c.metrics.StepDuration.WithLabelValues(strategy, step).Observe(d.Seconds())
}

func (c *SagaCoordinator) observeTransaction(strategy, outcome string, d time.Duration) {
	c.metrics.TransactionsTotal.WithLabelValues(strategy, outcome).Inc()
	c.metrics.TransactionDuration.WithLabelValues(strategy, outcome).Observe(d.Seconds())
}
