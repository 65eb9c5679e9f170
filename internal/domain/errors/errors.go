package errors

import (
	"errors"
	"fmt"
)

var (
	// Not-found errors
	ErrOrderNotFound    = errors.New("order not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrShipmentNotFound = errors.New("shipment not found")
	ErrProductNotFound  = errors.New("product not found")

	// Business rule violations
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrDuplicatePayment     = errors.New("payment already exists for order")
	ErrDuplicateShipment    = errors.New("shipment already exists for order")
	ErrFinaUnavailable      = errors.New("FINA service unavailable")
	ErrInvalidPaymentMethod = errors.New("invalid payment method or card details")
	ErrCarrierUnavailable   = errors.New("carrier unavailable")
	ErrInvalidAddress       = errors.New("invalid shipping address for carrier")

	// State machine violations
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// Transport errors
	ErrParticipantUnavailable = errors.New("participant unavailable")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
