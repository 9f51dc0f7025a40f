package model

import (
	"testing"
	"time"
)

func TestApplyLedgerSum(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		original      int64
		status        PaymentStatus
		ledgerSum     int64
		wantCompleted bool
		wantStatus    PaymentStatus
		wantPaid      int64
		wantRemaining int64
	}{
		{
			name:          "partial payment stays pending",
			original:      100000,
			status:        PaymentPending,
			ledgerSum:     60000,
			wantCompleted: false,
			wantStatus:    PaymentPending,
			wantPaid:      60000,
			wantRemaining: 40000,
		},
		{
			name:          "exact settlement completes",
			original:      100000,
			status:        PaymentPending,
			ledgerSum:     100000,
			wantCompleted: true,
			wantStatus:    PaymentCompleted,
			wantPaid:      100000,
			wantRemaining: 0,
		},
		{
			name:          "overpayment clamps remaining at zero",
			original:      100000,
			status:        PaymentPending,
			ledgerSum:     120000,
			wantCompleted: true,
			wantStatus:    PaymentCompleted,
			wantPaid:      120000,
			wantRemaining: 0,
		},
		{
			name:          "overdue payment settles too",
			original:      50000,
			status:        PaymentOverdue,
			ledgerSum:     50000,
			wantCompleted: true,
			wantStatus:    PaymentCompleted,
			wantPaid:      50000,
			wantRemaining: 0,
		},
		{
			name:          "already completed does not re-transition",
			original:      50000,
			status:        PaymentCompleted,
			ledgerSum:     50000,
			wantCompleted: false,
			wantStatus:    PaymentCompleted,
			wantPaid:      50000,
			wantRemaining: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PaymentModel{
				PaymentOriginalAmount:  tt.original,
				PaymentRemainingAmount: tt.original,
				PaymentStatus:          tt.status,
			}
			got := p.ApplyLedgerSum(tt.ledgerSum, now)
			if got != tt.wantCompleted {
				t.Errorf("ApplyLedgerSum() = %v, want %v", got, tt.wantCompleted)
			}
			if p.PaymentStatus != tt.wantStatus {
				t.Errorf("status = %s, want %s", p.PaymentStatus, tt.wantStatus)
			}
			if p.PaymentPaidAmount != tt.wantPaid {
				t.Errorf("paid = %d, want %d", p.PaymentPaidAmount, tt.wantPaid)
			}
			if p.PaymentRemainingAmount != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", p.PaymentRemainingAmount, tt.wantRemaining)
			}
			if got && p.PaymentPaidAt == nil {
				t.Error("PaymentPaidAt not set on transition to completed")
			}
			if !got && tt.status != PaymentCompleted && p.PaymentPaidAt != nil {
				t.Error("PaymentPaidAt set without a completed transition")
			}
		})
	}
}

func TestIsManual(t *testing.T) {
	ref := "REC-abc-1"
	manual := PaymentModel{}
	automated := PaymentModel{PaymentGatewayReference: &ref}

	if !manual.IsManual() {
		t.Error("payment without gateway reference should be manual")
	}
	if automated.IsManual() {
		t.Error("payment with gateway reference should not be manual")
	}
}
