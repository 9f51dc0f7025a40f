// Package gateway wraps the card processor's HTTP API. The client is
// deliberately thin: no internal retry, no timeout beyond the HTTP client's —
// a failed call surfaces as a per-item GatewayError and the batch moves on.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"academix_backend/internals/configs"
	"academix_backend/internals/features/billing/errs"
)

type Client struct {
	cfg  configs.GatewayConfig
	http *http.Client
}

func NewClient(cfg configs.GatewayConfig) *Client {
	return &Client{cfg: cfg, http: &http.Client{}}
}

// NewClientWithHTTP is used by tests to inject an httptest transport.
func NewClientWithHTTP(cfg configs.GatewayConfig, h *http.Client) *Client {
	return &Client{cfg: cfg, http: h}
}

// ChargeRequest is the processor-facing charge. Reference must be unique per
// charge cycle and at most 32 characters.
type ChargeRequest struct {
	AcceptanceToken string
	AmountInCents   int64
	CustomerEmail   string
	CardToken       string
	Reference       string
	PaymentSourceID *int64
}

type ChargeResult struct {
	TransactionID string
	Status        string
}

/* ---------- wire types ---------- */

type paymentMethodBody struct {
	Type         string `json:"type"`
	Token        string `json:"token"`
	Installments int    `json:"installments"`
}

type signatureBody struct {
	Integrity string `json:"integrity"`
}

type transactionBody struct {
	AcceptanceToken string            `json:"acceptance_token"`
	AmountInCents   int64             `json:"amount_in_cents"`
	Currency        string            `json:"currency"`
	CustomerEmail   string            `json:"customer_email"`
	PaymentMethod   paymentMethodBody `json:"payment_method"`
	Reference       string            `json:"reference"`
	PaymentSourceID *int64            `json:"payment_source_id,omitempty"`
	Signature       *signatureBody    `json:"signature,omitempty"`
}

type transactionResponse struct {
	Data struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"data"`
	Error struct {
		Type     string              `json:"type"`
		Messages map[string][]string `json:"messages"`
		Reason   string              `json:"reason"`
	} `json:"error"`
}

type merchantResponse struct {
	Data struct {
		PresignedAcceptance struct {
			AcceptanceToken string `json:"acceptance_token"`
		} `json:"presigned_acceptance"`
	} `json:"data"`
}

// FetchAcceptanceToken retrieves the merchant acceptance token keyed by the
// public credential. Required as a preliminary step before every charge.
func (c *Client) FetchAcceptanceToken(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/merchants/%s", c.cfg.BaseURL, c.cfg.PublicKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.NewGatewayError("FetchAcceptanceToken", 0, nil, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.NewGatewayError("FetchAcceptanceToken", resp.StatusCode, nil, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errs.NewGatewayError("FetchAcceptanceToken", resp.StatusCode, nil,
			fmt.Errorf("unexpected status: %s", string(body)))
	}

	var parsed merchantResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return "", errs.NewGatewayError("FetchAcceptanceToken", resp.StatusCode, nil, err)
	}
	token := parsed.Data.PresignedAcceptance.AcceptanceToken
	if token == "" {
		return "", errs.NewGatewayError("FetchAcceptanceToken", resp.StatusCode, nil,
			fmt.Errorf("empty acceptance token in response"))
	}
	return token, nil
}

// CreateTransaction posts one card charge. The integrity signature is
// attached iff the credential set is not a test credential.
func (c *Client) CreateTransaction(ctx context.Context, charge ChargeRequest) (*ChargeResult, error) {
	body := transactionBody{
		AcceptanceToken: charge.AcceptanceToken,
		AmountInCents:   charge.AmountInCents,
		Currency:        c.cfg.Currency,
		CustomerEmail:   charge.CustomerEmail,
		PaymentMethod: paymentMethodBody{
			Type:         "CARD",
			Token:        charge.CardToken,
			Installments: 1,
		},
		Reference:       charge.Reference,
		PaymentSourceID: charge.PaymentSourceID,
	}
	if !c.cfg.IsTestMode() {
		if c.cfg.IntegritySecret == "" {
			return nil, errs.NewGatewayError("CreateTransaction", 0, nil,
				fmt.Errorf("integrity secret is required outside test mode"))
		}
		body.Signature = &signatureBody{
			Integrity: IntegritySignature(charge.Reference, charge.AmountInCents, c.cfg.Currency, c.cfg.IntegritySecret),
		}
	}

	raw, err := sonic.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := c.cfg.BaseURL + "/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.PrivateKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.NewGatewayError("CreateTransaction", 0, nil, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewGatewayError("CreateTransaction", resp.StatusCode, nil, err)
	}

	var parsed transactionResponse
	if err := sonic.Unmarshal(respBody, &parsed); err != nil {
		return nil, errs.NewGatewayError("CreateTransaction", resp.StatusCode, nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var messages []string
		for field, list := range parsed.Error.Messages {
			for _, msg := range list {
				messages = append(messages, field+": "+msg)
			}
		}
		if parsed.Error.Reason != "" {
			messages = append(messages, parsed.Error.Reason)
		}
		return nil, errs.NewGatewayError("CreateTransaction", resp.StatusCode, messages, nil)
	}

	if parsed.Data.ID == "" {
		return nil, errs.NewGatewayError("CreateTransaction", resp.StatusCode, nil,
			fmt.Errorf("malformed response body: missing transaction id"))
	}
	return &ChargeResult{
		TransactionID: parsed.Data.ID,
		Status:        parsed.Data.Status,
	}, nil
}
