package shipment_test

import (
	"context"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/domain/order"
	"github.com/abilic/ordergate/internal/domain/shipment"
	shipmentSvc "github.com/abilic/ordergate/internal/participant/shipment"
	"github.com/abilic/ordergate/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupShipmentService(t *testing.T, address string) (*shipmentSvc.Service, *shipmentSvc.CarrierGateway, *order.Order) {
	t.Helper()

	orderRepo := memory.NewOrderRepository()
	o, err := order.NewOrder("Ana Horvat", "ana@example.com", address,
		[]order.Item{{ProductID: 1, ProductName: "Laptop", Quantity: 1, UnitPriceCents: 129999}},
		order.StatusConfirmed)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Create(context.Background(), o))

	carrier := shipmentSvc.NewCarrierGateway(zerolog.Nop())
	svc := shipmentSvc.NewService(memory.NewShipmentRepository(), orderRepo, carrier, zerolog.Nop())
	return svc, carrier, o
}

func shipmentRequest(orderID uuid.UUID) shipmentSvc.CreateShipmentRequest {
	return shipmentSvc.CreateShipmentRequest{
		OrderID:               orderID,
		Carrier:               "DHL",
		EstimatedDeliveryDate: time.Now().AddDate(0, 0, 7),
	}
}

func TestCreateShipment_AllocatesTracking(t *testing.T) {
	svc, _, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	sh, err := svc.Create(context.Background(), shipmentRequest(o.ID))
	require.NoError(t, err)

	assert.Equal(t, shipment.StatusPreparing, sh.Status)
	assert.True(t, strings.HasPrefix(sh.TrackingNumber, "TRK-"))
	// Customer and address come from the order, not the request.
	assert.Equal(t, o.ShippingAddress, sh.ShippingAddress)
	assert.Equal(t, o.CustomerName, sh.CustomerName)
}

func TestCreateShipment_DuplicateOrder(t *testing.T) {
	svc, _, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	_, err := svc.Create(context.Background(), shipmentRequest(o.ID))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), shipmentRequest(o.ID))
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateShipment)
}

func TestCreateShipment_UnknownOrder(t *testing.T) {
	svc, _, _ := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	_, err := svc.Create(context.Background(), shipmentRequest(uuid.New()))
	assert.ErrorIs(t, err, domainErrors.ErrOrderNotFound)
}

func TestCreateShipment_UnsupportedCarrier(t *testing.T) {
	svc, _, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	req := shipmentRequest(o.ID)
	req.Carrier = "FedEx"

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domainErrors.ErrCarrierUnavailable)
}

func TestCreateShipment_CarrierUnavailable(t *testing.T) {
	svc, carrier, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")
	carrier.SetAvailability(false)

	_, err := svc.Create(context.Background(), shipmentRequest(o.ID))
	assert.ErrorIs(t, err, domainErrors.ErrCarrierUnavailable)
}

func TestCreateShipment_CarrierAtCapacity(t *testing.T) {
	svc, carrier, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")
	carrier.SetCapacity(false)

	_, err := svc.Create(context.Background(), shipmentRequest(o.ID))
	assert.ErrorIs(t, err, domainErrors.ErrCarrierUnavailable)

	var domainErr *domainErrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "carrier_capacity", domainErr.Code)
}

func TestCreateShipment_AddressTooShort(t *testing.T) {
	svc, _, o := setupShipmentService(t, "Ilica 1")

	_, err := svc.Create(context.Background(), shipmentRequest(o.ID))
	assert.ErrorIs(t, err, domainErrors.ErrInvalidAddress)
}

func TestPrepareShipment_ReservesWithoutTracking(t *testing.T) {
	svc, _, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	sh, err := svc.Prepare(context.Background(), shipmentRequest(o.ID))
	require.NoError(t, err)

	assert.Equal(t, shipment.StatusReserved, sh.Status)
	assert.Empty(t, sh.TrackingNumber)
}

func TestCommitShipment_ConfirmsReservation(t *testing.T) {
	svc, _, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	sh, err := svc.Prepare(context.Background(), shipmentRequest(o.ID))
	require.NoError(t, err)

	confirmed, err := svc.Commit(context.Background(), sh.ID)
	require.NoError(t, err)

	assert.Equal(t, shipment.StatusPreparing, confirmed.Status)
	assert.True(t, strings.HasPrefix(confirmed.TrackingNumber, "TRK-"))
}

func TestCommitShipment_RejectsNonReserved(t *testing.T) {
	svc, _, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	sh, err := svc.Create(context.Background(), shipmentRequest(o.ID))
	require.NoError(t, err)

	_, err = svc.Commit(context.Background(), sh.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidStateTransition)
}

func TestAbortShipment_ReleasesReservation(t *testing.T) {
	svc, _, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	sh, err := svc.Prepare(context.Background(), shipmentRequest(o.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Abort(context.Background(), sh.ID))

	aborted, err := svc.GetByID(context.Background(), sh.ID)
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusFailed, aborted.Status)
}

func TestAbortShipment_NoOpWhenNotReserved(t *testing.T) {
	svc, _, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	sh, err := svc.Create(context.Background(), shipmentRequest(o.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Abort(context.Background(), sh.ID))

	after, err := svc.GetByID(context.Background(), sh.ID)
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusPreparing, after.Status)
}

func TestCancelShipment_DeletesRow(t *testing.T) {
	svc, _, o := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	sh, err := svc.Create(context.Background(), shipmentRequest(o.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), sh.ID))

	_, err = svc.GetByID(context.Background(), sh.ID)
	assert.ErrorIs(t, err, domainErrors.ErrShipmentNotFound)
}

func TestCancelShipment_UnknownShipment(t *testing.T) {
	svc, _, _ := setupShipmentService(t, "Ilica 1, 10000 Zagreb")

	err := svc.Cancel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainErrors.ErrShipmentNotFound)
}
