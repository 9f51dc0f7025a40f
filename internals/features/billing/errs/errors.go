// Package errs defines the billing error taxonomy. Batch jobs treat every
// one of these as a per-record failure: log, count, continue.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrPaymentNotFound is returned when the referenced payment row does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrAlreadyCompleted is returned when a ledger append targets a settled payment.
	ErrAlreadyCompleted = errors.New("payment is already completed")

	// ErrPaymentCancelled is returned when a ledger append targets a cancelled payment.
	ErrPaymentCancelled = errors.New("payment is cancelled")

	// ErrClaimLost is returned when the recurring processor loses the claim race
	// for a charge cycle to a concurrent invocation.
	ErrClaimLost = errors.New("charge cycle already claimed")
)

// ValidationError reports malformed input (bad email, invalid installment count).
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// GatewayError reports a non-success response (or malformed body) from the
// card processor. It is non-fatal to the batch; the payment's failure counter
// absorbs it.
type GatewayError struct {
	Op         string
	StatusCode int
	Messages   []string
	Err        error
}

func (e *GatewayError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("gateway: %s failed (status %d): %v", e.Op, e.StatusCode, e.Messages)
	}
	return fmt.Sprintf("gateway: %s failed (status %d): %v", e.Op, e.StatusCode, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func NewGatewayError(op string, status int, messages []string, err error) *GatewayError {
	return &GatewayError{Op: op, StatusCode: status, Messages: messages, Err: err}
}

// ConcurrencyError reports a stale read or a lost row-claim race.
type ConcurrencyError struct {
	Op  string
	Err error
}

func (e *ConcurrencyError) Error() string {
	return fmt.Sprintf("concurrency: %s: %v", e.Op, e.Err)
}

func (e *ConcurrencyError) Unwrap() error { return e.Err }

func (e *ConcurrencyError) Is(target error) bool { return errors.Is(e.Err, target) }

// DataIntegrityError reports a divergence between the stored paid amount and
// the ledger sum, which is always the source of truth.
type DataIntegrityError struct {
	PaymentID string
	Stored    int64
	LedgerSum int64
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: payment %s stored paid_amount %d diverges from ledger sum %d",
		e.PaymentID, e.Stored, e.LedgerSum)
}
