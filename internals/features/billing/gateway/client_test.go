package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"academix_backend/internals/configs"
	"academix_backend/internals/features/billing/errs"
)

func testConfig(baseURL string, testMode bool) configs.GatewayConfig {
	cfg := configs.GatewayConfig{
		BaseURL:         baseURL,
		PublicKey:       "pub_prod_abc",
		PrivateKey:      "prv_prod_def",
		IntegritySecret: "integrity_secret",
		Currency:        "COP",
	}
	if testMode {
		cfg.PublicKey = "pub_test_abc"
		cfg.PrivateKey = "prv_test_def"
	}
	return cfg
}

func TestFetchAcceptanceToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/merchants/pub_test_abc") {
			t.Errorf("path = %s, want /merchants/pub_test_abc suffix", r.URL.Path)
		}
		io.WriteString(w, `{"data":{"presigned_acceptance":{"acceptance_token":"tok_123"}}}`)
	}))
	defer srv.Close()

	c := NewClientWithHTTP(testConfig(srv.URL, true), srv.Client())
	token, err := c.FetchAcceptanceToken(context.Background())
	if err != nil {
		t.Fatalf("FetchAcceptanceToken() error = %v", err)
	}
	if token != "tok_123" {
		t.Errorf("token = %s, want tok_123", token)
	}
}

func TestFetchAcceptanceTokenEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{}}`)
	}))
	defer srv.Close()

	c := NewClientWithHTTP(testConfig(srv.URL, true), srv.Client())
	if _, err := c.FetchAcceptanceToken(context.Background()); err == nil {
		t.Fatal("expected error for empty acceptance token")
	}
}

func TestCreateTransactionTestMode(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer prv_test_def" {
			t.Errorf("Authorization = %s, want Bearer prv_test_def", auth)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data":{"id":"txn_987","status":"PENDING"}}`)
	}))
	defer srv.Close()

	c := NewClientWithHTTP(testConfig(srv.URL, true), srv.Client())
	result, err := c.CreateTransaction(context.Background(), ChargeRequest{
		AcceptanceToken: "tok_123",
		AmountInCents:   450000,
		CustomerEmail:   "guardian@example.com",
		CardToken:       "card_tok",
		Reference:       "REC-abc-1",
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if result.TransactionID != "txn_987" {
		t.Errorf("TransactionID = %s, want txn_987", result.TransactionID)
	}
	if result.Status != "PENDING" {
		t.Errorf("Status = %s, want PENDING", result.Status)
	}

	// Test credentials must not carry an integrity signature.
	if _, ok := got["signature"]; ok {
		t.Error("signature present on test credentials")
	}
	if got["amount_in_cents"].(float64) != 450000 {
		t.Errorf("amount_in_cents = %v, want 450000", got["amount_in_cents"])
	}
	if got["currency"] != "COP" {
		t.Errorf("currency = %v, want COP", got["currency"])
	}
	pm, ok := got["payment_method"].(map[string]any)
	if !ok {
		t.Fatal("payment_method missing")
	}
	if pm["type"] != "CARD" || pm["token"] != "card_tok" || pm["installments"].(float64) != 1 {
		t.Errorf("payment_method = %v", pm)
	}
}

func TestCreateTransactionSignsOutsideTestMode(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data":{"id":"txn_1","status":"APPROVED"}}`)
	}))
	defer srv.Close()

	c := NewClientWithHTTP(testConfig(srv.URL, false), srv.Client())
	_, err := c.CreateTransaction(context.Background(), ChargeRequest{
		AcceptanceToken: "tok_123",
		AmountInCents:   450000,
		CustomerEmail:   "guardian@example.com",
		CardToken:       "card_tok",
		Reference:       "REC-abc-1",
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	sig, ok := got["signature"].(map[string]any)
	if !ok {
		t.Fatal("signature missing on production credentials")
	}
	want := IntegritySignature("REC-abc-1", 450000, "COP", "integrity_secret")
	if sig["integrity"] != want {
		t.Errorf("integrity = %v, want %s", sig["integrity"], want)
	}
}

func TestCreateTransactionRequiresSecretOutsideTestMode(t *testing.T) {
	cfg := testConfig("http://unused", false)
	cfg.IntegritySecret = ""
	c := NewClientWithHTTP(cfg, &http.Client{})

	_, err := c.CreateTransaction(context.Background(), ChargeRequest{
		AcceptanceToken: "tok",
		AmountInCents:   100,
		CustomerEmail:   "a@b.co",
		CardToken:       "card",
		Reference:       "ref",
	})
	if err == nil {
		t.Fatal("expected error when integrity secret is missing outside test mode")
	}
}

func TestCreateTransactionErrorMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"error":{"type":"INPUT_VALIDATION_ERROR","messages":{"reference":["must be unique"]}}}`)
	}))
	defer srv.Close()

	c := NewClientWithHTTP(testConfig(srv.URL, true), srv.Client())
	_, err := c.CreateTransaction(context.Background(), ChargeRequest{
		AcceptanceToken: "tok",
		AmountInCents:   100,
		CustomerEmail:   "a@b.co",
		CardToken:       "card",
		Reference:       "dup-ref",
	})
	if err == nil {
		t.Fatal("expected error for 422 response")
	}

	gwErr, ok := err.(*errs.GatewayError)
	if !ok {
		t.Fatalf("error type = %T, want *errs.GatewayError", err)
	}
	if gwErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d, want 422", gwErr.StatusCode)
	}
	if len(gwErr.Messages) != 1 || gwErr.Messages[0] != "reference: must be unique" {
		t.Errorf("Messages = %v", gwErr.Messages)
	}
}
