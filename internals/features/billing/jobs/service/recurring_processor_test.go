package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"academix_backend/internals/features/billing/errs"
	paymentModel "academix_backend/internals/features/billing/payments/model"
)

func TestChargeEligible(t *testing.T) {
	today := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	cardToken := "card_tok_abc"
	pastDue := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	dueToday := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	future := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)

	base := func() paymentModel.PaymentModel {
		return paymentModel.PaymentModel{
			PaymentIsRecurring:    true,
			PaymentStatus:         paymentModel.PaymentCompleted,
			PaymentCardToken:      &cardToken,
			PaymentFailedAttempts: 0,
			PaymentNextChargeDate: &pastDue,
		}
	}

	tests := []struct {
		name   string
		mutate func(*paymentModel.PaymentModel)
		want   bool
	}{
		{"due base payment", func(p *paymentModel.PaymentModel) {}, true},
		{"never charged yet", func(p *paymentModel.PaymentModel) { p.PaymentNextChargeDate = nil }, true},
		{"due exactly today", func(p *paymentModel.PaymentModel) { p.PaymentNextChargeDate = &dueToday }, true},
		{"one attempt below the cap", func(p *paymentModel.PaymentModel) { p.PaymentFailedAttempts = MaxFailedAttempts - 1 }, true},
		{"at the failure cap", func(p *paymentModel.PaymentModel) { p.PaymentFailedAttempts = MaxFailedAttempts }, false},
		{"past the failure cap", func(p *paymentModel.PaymentModel) { p.PaymentFailedAttempts = MaxFailedAttempts + 2 }, false},
		{"auto-charge suspended", func(p *paymentModel.PaymentModel) { p.PaymentAutoChargeSuspended = true }, false},
		{"not yet due", func(p *paymentModel.PaymentModel) { p.PaymentNextChargeDate = &future }, false},
		{"no card token", func(p *paymentModel.PaymentModel) { p.PaymentCardToken = nil }, false},
		{"not recurring", func(p *paymentModel.PaymentModel) { p.PaymentIsRecurring = false }, false},
		{"still pending", func(p *paymentModel.PaymentModel) { p.PaymentStatus = paymentModel.PaymentPending }, false},
		{"overdue base", func(p *paymentModel.PaymentModel) { p.PaymentStatus = paymentModel.PaymentOverdue }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(&p)
			if got := ChargeEligible(&p, today); got != tt.want {
				t.Errorf("ChargeEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildRecurringReference(t *testing.T) {
	now := time.Unix(1767225600, 0) // 2026-01-01T00:00:00Z
	enrollmentID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	paymentID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("fits gateway limit", func(t *testing.T) {
		ref := BuildRecurringReference(&enrollmentID, paymentID, now)
		if len(ref) > GatewayReferenceMaxLen {
			t.Errorf("len = %d, want <= %d", len(ref), GatewayReferenceMaxLen)
		}
		if !strings.HasPrefix(ref, "REC-") {
			t.Errorf("reference %q missing REC- prefix", ref)
		}
	})

	t.Run("anchored on enrollment when present", func(t *testing.T) {
		withEnrollment := BuildRecurringReference(&enrollmentID, paymentID, now)
		withoutEnrollment := BuildRecurringReference(nil, paymentID, now)
		if withEnrollment == withoutEnrollment {
			t.Error("enrollment anchor should change the reference")
		}
	})

	t.Run("deterministic for same anchor and time", func(t *testing.T) {
		a := BuildRecurringReference(&enrollmentID, paymentID, now)
		b := BuildRecurringReference(&enrollmentID, paymentID, now)
		if a != b {
			t.Errorf("references differ for identical input: %q vs %q", a, b)
		}
	})

	t.Run("fresh per invocation time", func(t *testing.T) {
		a := BuildRecurringReference(&enrollmentID, paymentID, now)
		b := BuildRecurringReference(&enrollmentID, paymentID, now.Add(time.Second))
		if a == b {
			t.Error("references for different timestamps must differ")
		}
	})
}

func TestValidatedEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"guardian@example.com", "guardian@example.com"},
		{"Maria Lopez <maria@example.com>", "maria@example.com"},
		{"", ""},
		{"not-an-email", ""},
		{"missing@domain@twice.com", ""},
	}

	for _, tt := range tests {
		if got := ValidatedEmail(tt.in); got != tt.want {
			t.Errorf("ValidatedEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsSkip(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"claim lost", &errs.ConcurrencyError{Op: "claim charge cycle", Err: errs.ErrClaimLost}, true},
		{"bare claim sentinel", errs.ErrClaimLost, true},
		{"no fee configured", errSkipNoFee, true},
		{"gateway failure", errs.NewGatewayError("CreateTransaction", 500, nil, errors.New("boom")), false},
		{"plain error", errors.New("db down"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSkip(tt.err); got != tt.want {
				t.Errorf("isSkip() = %v, want %v", got, tt.want)
			}
		})
	}
}
