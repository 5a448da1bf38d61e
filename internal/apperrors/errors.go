package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Payment intake and reconciliation errors.
var (
	// ErrInvalidSignature means a gateway notification failed authentication.
	ErrInvalidSignature = errors.New("invalid notification signature")

	// ErrDonationNotFound means no donation matches the notified gateway order id.
	ErrDonationNotFound = errors.New("donation not found for gateway order")

	// ErrUnmappedGatewayStatus means the gateway reported a status with no internal mapping.
	// It is never coerced into a payment.
	ErrUnmappedGatewayStatus = errors.New("unmapped gateway transaction status")

	// ErrAmountMismatch means the notified gross amount differs from the donation amount.
	ErrAmountMismatch = errors.New("notified amount does not match donation amount")

	// ErrGatewayUnavailable means the gateway could not be reached or timed out.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayRejected means the gateway refused the checkout request.
	ErrGatewayRejected = errors.New("payment gateway rejected the request")

	// ErrLedgerWriteConflict means storage contention aborted the unit of work; retrying is safe.
	ErrLedgerWriteConflict = errors.New("ledger write conflict")

	// ErrInvalidTransition means the requested status change is not an edge of the state machine.
	ErrInvalidTransition = errors.New("invalid donation status transition")
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
