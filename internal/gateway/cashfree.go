// Package gateway looks up payment records from the Cashfree payment
// gateway's REST API.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leadthebusiness/platform-api/pkg/config"
)

// PaymentStatusSuccess is the gateway's terminal success state.
const PaymentStatusSuccess = "SUCCESS"

// Payment is the subset of a gateway payment record the service reads.
type Payment struct {
	PaymentID string `json:"cf_payment_id"`
	Status    string `json:"payment_status"`
}

// Observer reports one lookup's outcome, typically into metrics.
type Observer func(status int, elapsed time.Duration)

// Cashfree fetches payments for an order.
type Cashfree struct {
	baseURL      string
	apiVersion   string
	clientID     string
	clientSecret string
	http         *http.Client
	observe      Observer
}

// NewCashfree builds the gateway client from configuration.
func NewCashfree(cfg config.PaymentsConfig, observe Observer) *Cashfree {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.cashfree.com"
	}
	return &Cashfree{
		baseURL:      base,
		apiVersion:   cfg.APIVersion,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		http:         &http.Client{Timeout: timeout},
		observe:      observe,
	}
}

// OrderPayments returns every payment recorded against the order.
func (c *Cashfree) OrderPayments(ctx context.Context, orderID string) ([]Payment, error) {
	url := fmt.Sprintf("%s/pg/orders/%s/payments", c.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build payments request: %w", err)
	}
	req.Header.Set("x-api-version", c.apiVersion)
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-client-secret", c.clientSecret)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.observe != nil {
			c.observe(0, time.Since(start))
		}
		return nil, fmt.Errorf("fetch payments: %w", err)
	}
	defer resp.Body.Close()
	if c.observe != nil {
		c.observe(resp.StatusCode, time.Since(start))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read payments response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var payments []Payment
	if err := json.Unmarshal(body, &payments); err != nil {
		if !json.Valid(body) {
			return nil, fmt.Errorf("parse payments response: %w", err)
		}
		// The gateway answers a bare object for unknown orders; a valid
		// non-array body means no payments.
		return nil, nil
	}
	return payments, nil
}
