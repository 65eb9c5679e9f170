package payment

import (
	"regexp"
	"sync"

	"github.com/abilic/ordergate/internal/domain/payment"
	"github.com/rs/zerolog"
)

var cardSuffixPattern = regexp.MustCompile(`^\d{4}$`)

// FinancialAgency simulates the FINA payment authority. The toggles exist for
// fault injection through the config console; both default to enabled.
type FinancialAgency struct {
	mu                      sync.RWMutex
	availabilityEnabled     bool
	preAuthorizationEnabled bool
	logger                  zerolog.Logger
}

// NewFinancialAgency creates an agency with all validations enabled.
func NewFinancialAgency(logger zerolog.Logger) *FinancialAgency {
	return &FinancialAgency{
		availabilityEnabled:     true,
		preAuthorizationEnabled: true,
		logger:                  logger,
	}
}

// Available reports whether the agency accepts requests.
func (f *FinancialAgency) Available() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.availabilityEnabled {
		f.logger.Warn().Msg("FINA service is currently unavailable")
		return false
	}
	return true
}

// ValidateMethod checks the payment method and card details. Card methods
// require exactly four digits of the card suffix.
func (f *FinancialAgency) ValidateMethod(method payment.PaymentMethod, cardSuffix string) bool {
	if method == "" {
		return false
	}
	if method == payment.MethodCreditCard || method == payment.MethodDebitCard {
		if !cardSuffixPattern.MatchString(cardSuffix) {
			f.logger.Warn().Str("payment_method", string(method)).Msg("invalid card format")
			return false
		}
	}
	return true
}

// PreAuthorize places a hold on the given amount.
func (f *FinancialAgency) PreAuthorize(transactionID string, amountCents int64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	f.logger.Info().
		Str("transaction_id", transactionID).
		Int64("amount_cents", amountCents).
		Msg("pre-authorizing payment")

	if !f.preAuthorizationEnabled {
		f.logger.Warn().Str("transaction_id", transactionID).Msg("payment pre-authorization failed")
		return false
	}
	return true
}

// SetAvailability toggles the availability check (fault injection).
func (f *FinancialAgency) SetAvailability(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.availabilityEnabled = enabled
}

// SetPreAuthorization toggles the pre-authorization check (fault injection).
func (f *FinancialAgency) SetPreAuthorization(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.preAuthorizationEnabled = enabled
}

// State reports the current toggle values.
func (f *FinancialAgency) State() (availability, preAuthorization bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.availabilityEnabled, f.preAuthorizationEnabled
}
