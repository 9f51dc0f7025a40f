package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConcurrencyErrorIs(t *testing.T) {
	err := &ConcurrencyError{Op: "claim charge cycle", Err: ErrClaimLost}

	if !errors.Is(err, ErrClaimLost) {
		t.Error("ConcurrencyError wrapping ErrClaimLost should match errors.Is")
	}
	if errors.Is(err, ErrPaymentNotFound) {
		t.Error("ConcurrencyError should not match unrelated sentinels")
	}

	var ce *ConcurrencyError
	if !errors.As(fmt.Errorf("outer: %w", err), &ce) {
		t.Error("errors.As should find ConcurrencyError through wrapping")
	}
}

func TestGatewayErrorMessage(t *testing.T) {
	withMessages := NewGatewayError("CreateTransaction", 422, []string{"reference: must be unique"}, nil)
	if !strings.Contains(withMessages.Error(), "reference: must be unique") {
		t.Errorf("Error() = %q, want processor messages included", withMessages.Error())
	}

	cause := errors.New("connection refused")
	withCause := NewGatewayError("FetchAcceptanceToken", 0, nil, cause)
	if !errors.Is(withCause, cause) {
		t.Error("GatewayError should unwrap to its cause")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("count", 0, "must be at least 1")
	msg := err.Error()
	if !strings.Contains(msg, "count") || !strings.Contains(msg, "must be at least 1") {
		t.Errorf("Error() = %q, want field and message included", msg)
	}
}

func TestDataIntegrityErrorMessage(t *testing.T) {
	err := &DataIntegrityError{PaymentID: "abc", Stored: 100, LedgerSum: 150}
	msg := err.Error()
	if !strings.Contains(msg, "100") || !strings.Contains(msg, "150") {
		t.Errorf("Error() = %q, want both amounts included", msg)
	}
}
