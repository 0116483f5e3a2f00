// Package mailer relays transactional email through the Resend HTTP API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leadthebusiness/platform-api/pkg/config"
)

// Message is one outbound email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Mailer sends messages. Implemented by Resend and faked in tests.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Observer reports one relay attempt's outcome, typically into metrics.
type Observer func(status int, elapsed time.Duration)

// Resend sends email via api.resend.com.
type Resend struct {
	baseURL string
	apiKey  string
	http    *http.Client
	observe Observer
}

// NewResend builds the relay client from configuration.
func NewResend(cfg config.MailConfig, observe Observer) *Resend {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.resend.com"
	}
	return &Resend{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		observe: observe,
	}
}

// Send posts the message to the /emails endpoint.
func (r *Resend) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	start := time.Now()
	resp, err := r.http.Do(req)
	if err != nil {
		if r.observe != nil {
			r.observe(0, time.Since(start))
		}
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()
	if r.observe != nil {
		r.observe(resp.StatusCode, time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Keep the body out of the error: provider responses can echo
		// recipient details.
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("email relay returned status %d", resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
