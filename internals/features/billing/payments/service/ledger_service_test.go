package service

import (
	"errors"
	"testing"

	"academix_backend/internals/features/billing/errs"
)

func TestOutstandingAmount(t *testing.T) {
	tests := []struct {
		name      string
		original  int64
		ledgerSum int64
		want      int64
		wantErr   error
	}{
		{"nothing paid yet", 100000, 0, 100000, nil},
		{"partial entry recorded", 100000, 60000, 40000, nil},
		// A concurrent entry that settled the payment between selection and
		// the lock must not produce a second full-amount entry.
		{"ledger already settled", 100000, 100000, 0, errs.ErrAlreadyCompleted},
		{"ledger exceeds original", 100000, 120000, 0, errs.ErrAlreadyCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outstandingAmount(tt.original, tt.ledgerSum)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("outstandingAmount() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("outstandingAmount() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("outstandingAmount() = %d, want %d", got, tt.want)
			}
		})
	}
}
