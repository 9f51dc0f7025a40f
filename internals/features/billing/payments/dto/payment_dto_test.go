package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"

	m "academix_backend/internals/features/billing/payments/model"
)

func TestCreatePaymentRequestToModel(t *testing.T) {
	actorID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	due := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		amount     int64
		discount   int64
		wantAmount int64
	}{
		{"no discount", 100000, 0, 100000},
		{"partial discount", 100000, 25000, 75000},
		{"discount exceeds amount clamps to zero", 100000, 150000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreatePaymentRequest{
				PaymentStudentID: uuid.New(),
				PaymentProgramID: uuid.New(),
				PaymentConcept:   "Enrollment fee",
				PaymentAmount:    tt.amount,
				PaymentDiscount:  tt.discount,
				PaymentDueDate:   due,
			}
			got := req.ToModel(actorID)

			if got.PaymentAmount != tt.wantAmount {
				t.Errorf("PaymentAmount = %d, want %d", got.PaymentAmount, tt.wantAmount)
			}
			if got.PaymentOriginalAmount != tt.wantAmount {
				t.Errorf("PaymentOriginalAmount = %d, want %d", got.PaymentOriginalAmount, tt.wantAmount)
			}
			if got.PaymentRemainingAmount != tt.wantAmount {
				t.Errorf("PaymentRemainingAmount = %d, want %d", got.PaymentRemainingAmount, tt.wantAmount)
			}
			if got.PaymentDiscountAmount != tt.discount {
				t.Errorf("PaymentDiscountAmount = %d, want %d", got.PaymentDiscountAmount, tt.discount)
			}
			if got.PaymentStatus != m.PaymentPending {
				t.Errorf("PaymentStatus = %s, want pending", got.PaymentStatus)
			}
			if got.PaymentRecordedBy == nil || *got.PaymentRecordedBy != actorID {
				t.Error("PaymentRecordedBy not threaded from actor")
			}
		})
	}
}
