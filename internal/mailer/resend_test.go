package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadthebusiness/platform-api/pkg/config"
)

func TestResendSend(t *testing.T) {
	var gotAuth string
	var gotMsg Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotMsg))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer server.Close()

	relay := NewResend(config.MailConfig{BaseURL: server.URL, APIKey: "re_test_key"}, nil)
	err := relay.Send(context.Background(), Message{
		From:    "Contact Form <contact@resend.dev>",
		To:      []string{"info@leadthebusiness.in"},
		Subject: "New Contact Form Submission from Asha",
		HTML:    "<p>hello</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test_key", gotAuth)
	assert.Equal(t, []string{"info@leadthebusiness.in"}, gotMsg.To)
	assert.Equal(t, "New Contact Form Submission from Asha", gotMsg.Subject)
}

func TestResendSendNonSuccessStatus(t *testing.T) {
	var observed int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer server.Close()

	relay := NewResend(config.MailConfig{BaseURL: server.URL}, func(status int, _ time.Duration) { observed = status })
	err := relay.Send(context.Background(), Message{From: "x", To: []string{"y"}})

	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, observed)
	// Provider body must not leak into the error.
	assert.NotContains(t, err.Error(), "invalid from")
}
