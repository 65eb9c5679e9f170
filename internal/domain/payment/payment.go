package payment

import (
	"strings"
	"time"

	"github.com/abilic/ordergate/internal/domain/errors"
	"github.com/google/uuid"
)

// PaymentStatus represents the payment status in the state machine
type PaymentStatus string

const (
	StatusPending       PaymentStatus = "PENDING"
	StatusPreAuthorized PaymentStatus = "PRE_AUTHORIZED"
	StatusProcessing    PaymentStatus = "PROCESSING"
	StatusCompleted     PaymentStatus = "COMPLETED"
	StatusFailed        PaymentStatus = "FAILED"
	StatusRefunded      PaymentStatus = "REFUNDED"
	StatusCancelled     PaymentStatus = "CANCELLED"
)

// PaymentMethod represents how the customer pays
type PaymentMethod string

const (
	MethodCreditCard     PaymentMethod = "CREDIT_CARD"
	MethodDebitCard      PaymentMethod = "DEBIT_CARD"
	MethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
	MethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

// Transaction id prefixes. A captured payment rewrites PRE- to CAPTURED-.
const (
	TxnPrefixImmediate = "TXN-"
	TxnPrefixHold      = "PRE-"
	TxnPrefixCaptured  = "CAPTURED-"
)

// Payment represents a payment entity
type Payment struct {
	ID                 uuid.UUID
	OrderID            uuid.UUID
	PaidCustomerName   string
	PaidCustomerEmail  string
	PaidAmountCents    int64
	PaymentMethod      PaymentMethod
	PaymentProvider    string
	CardLastFourDigits string
	TransactionID      string
	Status             PaymentStatus
	FailureReason      string
	ProcessedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewCompletedPayment creates a payment captured immediately (saga path).
func NewCompletedPayment(orderID uuid.UUID, customerName, customerEmail string, amountCents int64, method PaymentMethod, provider, cardSuffix string) *Payment {
	p := newPayment(orderID, customerName, customerEmail, amountCents, method, provider, cardSuffix)
	p.TransactionID = TxnPrefixImmediate + uuid.New().String()
	p.Status = StatusCompleted
	now := time.Now()
	p.ProcessedAt = &now
	return p
}

// NewPreAuthorizedPayment creates a payment with funds held but not captured
// (2PC prepare path).
func NewPreAuthorizedPayment(orderID uuid.UUID, customerName, customerEmail string, amountCents int64, method PaymentMethod, provider, cardSuffix string) *Payment {
	p := newPayment(orderID, customerName, customerEmail, amountCents, method, provider, cardSuffix)
	p.TransactionID = TxnPrefixHold + uuid.New().String()
	p.Status = StatusPreAuthorized
	return p
}

func newPayment(orderID uuid.UUID, customerName, customerEmail string, amountCents int64, method PaymentMethod, provider, cardSuffix string) *Payment {
	if provider == "" {
		provider = "FINA"
	}
	now := time.Now()
	return &Payment{
		ID:                 uuid.New(),
		OrderID:            orderID,
		PaidCustomerName:   customerName,
		PaidCustomerEmail:  customerEmail,
		PaidAmountCents:    amountCents,
		PaymentMethod:      method,
		PaymentProvider:    provider,
		CardLastFourDigits: cardSuffix,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// CanTransitionTo checks if the payment can transition to the given status
func (p *Payment) CanTransitionTo(newStatus PaymentStatus) bool {
	transitions := map[PaymentStatus][]PaymentStatus{
		StatusPending: {
			StatusPreAuthorized,
			StatusProcessing,
			StatusCompleted,
			StatusCancelled,
		},
		StatusPreAuthorized: {
			StatusCompleted,
			StatusCancelled,
			StatusFailed,
		},
		StatusProcessing: {
			StatusCompleted,
			StatusFailed,
		},
		StatusCompleted: {
			StatusRefunded,
		},
		StatusFailed:    {},
		StatusRefunded:  {}, // Terminal state
		StatusCancelled: {}, // Terminal state
	}

	allowed, exists := transitions[p.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

// TransitionTo transitions the payment to a new status
func (p *Payment) TransitionTo(newStatus PaymentStatus) error {
	if !p.CanTransitionTo(newStatus) {
		return errors.NewDomainError(
			"invalid_transition",
			"cannot transition payment from "+string(p.Status)+" to "+string(newStatus),
			errors.ErrInvalidStateTransition,
		)
	}
	p.Status = newStatus
	p.UpdatedAt = time.Now()
	if newStatus == StatusCompleted || newStatus == StatusFailed || newStatus == StatusCancelled {
		now := time.Now()
		p.ProcessedAt = &now
	}
	return nil
}

// Capture finalizes a pre-authorized payment: status goes to COMPLETED and the
// transaction id prefix is rewritten from PRE- to CAPTURED-.
func (p *Payment) Capture() error {
	if err := p.TransitionTo(StatusCompleted); err != nil {
		return err
	}
	p.TransactionID = strings.Replace(p.TransactionID, TxnPrefixHold, TxnPrefixCaptured, 1)
	return nil
}

// MarkCancelled transitions the payment to cancelled status
func (p *Payment) MarkCancelled(reason string) error {
	if err := p.TransitionTo(StatusCancelled); err != nil {
		return err
	}
	p.FailureReason = reason
	return nil
}

// IsTerminal checks if the payment is in a terminal state
func (p *Payment) IsTerminal() bool {
	return p.Status == StatusCompleted ||
		p.Status == StatusCancelled ||
		p.Status == StatusRefunded
}
