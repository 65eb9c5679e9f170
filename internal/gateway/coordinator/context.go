package coordinator

import (
	"time"

	"github.com/abilic/ordergate/internal/participant/api"
)

// TransactionContext accumulates participant state as a place-order
// transaction progresses. The prepared flags drive the abort sweep: only
// participants that reached their prepared state get an abort call.
type TransactionContext struct {
	Order    *api.OrderResponse
	Payment  *api.PaymentResponse
	Shipment *api.ShipmentResponse

	OrderPrepared    bool
	PaymentPrepared  bool
	ShipmentPrepared bool
	Committed        bool

	OrderLatency    time.Duration
	PaymentLatency  time.Duration
	ShippingLatency time.Duration
	PrepareLatency  time.Duration
	CommitLatency   time.Duration
	AbortLatency    time.Duration
	TotalLatency    time.Duration
}

// fill copies participant identifiers and latencies into the response.
func (t *TransactionContext) fill(resp *PlaceOrderResponse) {
	if t.Order != nil {
		resp.OrderID = t.Order.ID
		resp.OrderStatus = t.Order.Status
		resp.TotalAmountCents = t.Order.TotalAmountCents
	}
	if t.Payment != nil {
		resp.PaymentID = t.Payment.ID
		resp.PaymentStatus = t.Payment.Status
		resp.TransactionID = t.Payment.TransactionID
	}
	if t.Shipment != nil {
		resp.ShipmentID = t.Shipment.ID
		resp.ShipmentStatus = t.Shipment.Status
		resp.TrackingNumber = t.Shipment.TrackingNumber
	}
	resp.OrderLatencyMS = t.OrderLatency.Milliseconds()
	resp.PaymentLatencyMS = t.PaymentLatency.Milliseconds()
	resp.ShippingLatencyMS = t.ShippingLatency.Milliseconds()
	resp.PrepareLatencyMS = t.PrepareLatency.Milliseconds()
	resp.CommitLatencyMS = t.CommitLatency.Milliseconds()
	resp.AbortLatencyMS = t.AbortLatency.Milliseconds()
	resp.TotalLatencyMS = t.TotalLatency.Milliseconds()
}
