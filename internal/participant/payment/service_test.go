package payment_test

import (
	"context"
	"strings"
	"testing"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/domain/order"
	"github.com/abilic/ordergate/internal/domain/payment"
	paymentSvc "github.com/abilic/ordergate/internal/participant/payment"
	"github.com/abilic/ordergate/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaymentService(t *testing.T) (*paymentSvc.Service, *paymentSvc.FinancialAgency, *order.Order) {
	t.Helper()

	orderRepo := memory.NewOrderRepository()
	o, err := order.NewOrder("Ana Horvat", "ana@example.com", "Ilica 1, 10000 Zagreb",
		[]order.Item{{ProductID: 1, ProductName: "Laptop", Quantity: 2, UnitPriceCents: 129999}},
		order.StatusConfirmed)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Create(context.Background(), o))

	fina := paymentSvc.NewFinancialAgency(zerolog.Nop())
	svc := paymentSvc.NewService(memory.NewPaymentRepository(), orderRepo, fina, zerolog.Nop())
	return svc, fina, o
}

func paymentRequest(orderID uuid.UUID) paymentSvc.CreatePaymentRequest {
	return paymentSvc.CreatePaymentRequest{
		OrderID:            orderID,
		CustomerName:       "Ana Horvat",
		CustomerEmail:      "ana@example.com",
		PaymentMethod:      payment.MethodCreditCard,
		CardLastFourDigits: "4242",
	}
}

func TestCreatePayment_CompletesImmediately(t *testing.T) {
	svc, _, o := setupPaymentService(t)

	p, err := svc.Create(context.Background(), paymentRequest(o.ID))
	require.NoError(t, err)

	assert.Equal(t, payment.StatusCompleted, p.Status)
	assert.True(t, strings.HasPrefix(p.TransactionID, "TXN-"))
	// The amount comes from the order, never from the request.
	assert.Equal(t, o.TotalAmountCents, p.PaidAmountCents)
	assert.NotNil(t, p.ProcessedAt)
}

func TestCreatePayment_DuplicateOrder(t *testing.T) {
	svc, _, o := setupPaymentService(t)

	_, err := svc.Create(context.Background(), paymentRequest(o.ID))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), paymentRequest(o.ID))
	assert.ErrorIs(t, err, domainErrors.ErrDuplicatePayment)
}

func TestCreatePayment_UnknownOrder(t *testing.T) {
	svc, _, _ := setupPaymentService(t)

	_, err := svc.Create(context.Background(), paymentRequest(uuid.New()))
	assert.ErrorIs(t, err, domainErrors.ErrOrderNotFound)
}

func TestCreatePayment_FinaUnavailable(t *testing.T) {
	svc, fina, o := setupPaymentService(t)
	fina.SetAvailability(false)

	_, err := svc.Create(context.Background(), paymentRequest(o.ID))
	assert.ErrorIs(t, err, domainErrors.ErrFinaUnavailable)
}

func TestCreatePayment_InvalidCardSuffix(t *testing.T) {
	tests := []struct {
		name   string
		suffix string
	}{
		{"empty", ""},
		{"too short", "42"},
		{"letters", "abcd"},
		{"too long", "42424"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, o := setupPaymentService(t)

			req := paymentRequest(o.ID)
			req.CardLastFourDigits = tt.suffix

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, domainErrors.ErrInvalidPaymentMethod)
		})
	}
}

func TestCreatePayment_BankTransferNeedsNoCard(t *testing.T) {
	svc, _, o := setupPaymentService(t)

	req := paymentRequest(o.ID)
	req.PaymentMethod = payment.MethodBankTransfer
	req.CardLastFourDigits = ""

	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, p.Status)
}

func TestPreparePayment_PreAuthorizes(t *testing.T) {
	svc, _, o := setupPaymentService(t)

	p, err := svc.Prepare(context.Background(), paymentRequest(o.ID))
	require.NoError(t, err)

	assert.Equal(t, payment.StatusPreAuthorized, p.Status)
	assert.True(t, strings.HasPrefix(p.TransactionID, "PRE-"))
	assert.Nil(t, p.ProcessedAt)
}

func TestPreparePayment_PreAuthorizationDisabled(t *testing.T) {
	svc, fina, o := setupPaymentService(t)
	fina.SetPreAuthorization(false)

	_, err := svc.Prepare(context.Background(), paymentRequest(o.ID))
	assert.ErrorIs(t, err, domainErrors.ErrFinaUnavailable)

	// Nothing persisted when the hold is rejected.
	_, err = svc.GetByOrderID(context.Background(), o.ID)
	assert.ErrorIs(t, err, domainErrors.ErrPaymentNotFound)
}

func TestCommitPayment_CapturesHold(t *testing.T) {
	svc, _, o := setupPaymentService(t)

	p, err := svc.Prepare(context.Background(), paymentRequest(o.ID))
	require.NoError(t, err)

	captured, err := svc.Commit(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, payment.StatusCompleted, captured.Status)
	assert.True(t, strings.HasPrefix(captured.TransactionID, "CAPTURED-"))
	assert.NotNil(t, captured.ProcessedAt)
}

func TestCommitPayment_RejectsNonPreAuthorized(t *testing.T) {
	svc, _, o := setupPaymentService(t)

	p, err := svc.Create(context.Background(), paymentRequest(o.ID))
	require.NoError(t, err)

	_, err = svc.Commit(context.Background(), p.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidStateTransition)
}

func TestAbortPayment_ReleasesHold(t *testing.T) {
	svc, _, o := setupPaymentService(t)

	p, err := svc.Prepare(context.Background(), paymentRequest(o.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Abort(context.Background(), p.ID))

	aborted, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCancelled, aborted.Status)
	assert.Equal(t, "transaction aborted by coordinator", aborted.FailureReason)
}

func TestAbortPayment_NoOpWhenNotPreAuthorized(t *testing.T) {
	svc, _, o := setupPaymentService(t)

	p, err := svc.Create(context.Background(), paymentRequest(o.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Abort(context.Background(), p.ID))

	after, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, after.Status)
}

func TestRefundPayment_DeletesRow(t *testing.T) {
	svc, _, o := setupPaymentService(t)

	p, err := svc.Create(context.Background(), paymentRequest(o.ID))
	require.NoError(t, err)

	refunded, err := svc.Refund(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, refunded.ID)

	_, err = svc.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domainErrors.ErrPaymentNotFound)

	// A retried order can be paid again after the refund.
	_, err = svc.Create(context.Background(), paymentRequest(o.ID))
	assert.NoError(t, err)
}
