package gateway

import "testing"

func TestIntegritySignature(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		amount    int64
		currency  string
		secret    string
		want      string
	}{
		{
			name:      "known vector",
			reference: "test-ref-001",
			amount:    2500000,
			currency:  "COP",
			secret:    "test_integrity_secret",
			want:      "9e44b1f899268c6449dcc315c2db8bb9575c5ba8a30a6aba0848d3a6599d2585",
		},
		{
			name:      "subscription reference",
			reference: "sub_abc-1700000000",
			amount:    459900,
			currency:  "COP",
			secret:    "stagtest_integrity_x",
			want:      "1b499098d5defc45224daaefa4b29badf4508eeea6b8ea71f9b37d58c6586250",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntegritySignature(tt.reference, tt.amount, tt.currency, tt.secret)
			if got != tt.want {
				t.Errorf("IntegritySignature() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIntegritySignatureAmountSensitivity(t *testing.T) {
	a := IntegritySignature("ref", 100, "COP", "s")
	b := IntegritySignature("ref", 101, "COP", "s")
	if a == b {
		t.Error("signatures for different amounts must differ")
	}
	if len(a) != 64 {
		t.Errorf("signature length = %d, want 64 hex chars", len(a))
	}
}
