package configs

import "testing"

func TestGatewayConfigIsTestMode(t *testing.T) {
	tests := []struct {
		name       string
		publicKey  string
		privateKey string
		want       bool
	}{
		{"both test keys", "pub_test_abc", "prv_test_def", true},
		{"test public only", "pub_test_abc", "prv_prod_def", true},
		{"test private only", "pub_prod_abc", "prv_test_def", true},
		{"production keys", "pub_prod_abc", "prv_prod_def", false},
		{"empty keys", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GatewayConfig{PublicKey: tt.publicKey, PrivateKey: tt.privateKey}
			if got := g.IsTestMode(); got != tt.want {
				t.Errorf("IsTestMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("ACADEMIX_TEST_KEY", "set")
	if got := GetEnv("ACADEMIX_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("GetEnv() = %q, want set", got)
	}
	if got := GetEnv("ACADEMIX_TEST_KEY_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, want fallback", got)
	}
}
