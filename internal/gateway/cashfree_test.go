package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadthebusiness/platform-api/pkg/config"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc, observe Observer) *Cashfree {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewCashfree(config.PaymentsConfig{
		BaseURL:      server.URL,
		APIVersion:   "2025-01-01",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Timeout:      2 * time.Second,
	}, observe)
}

func TestCashfreeOrderPayments(t *testing.T) {
	var gotPath, gotVersion, gotClientID string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.Header.Get("x-api-version")
		gotClientID = r.Header.Get("x-client-id")
		_, _ = w.Write([]byte(`[
			{"cf_payment_id":"p1","payment_status":"SUCCESS"},
			{"cf_payment_id":"p2","payment_status":"FAILED"},
			{"cf_payment_id":"p3","payment_status":"SUCCESS"}
		]`))
	}, nil)

	payments, err := gw.OrderPayments(context.Background(), "order-1")
	require.NoError(t, err)
	require.Len(t, payments, 3)

	assert.Equal(t, "/pg/orders/order-1/payments", gotPath)
	assert.Equal(t, "2025-01-01", gotVersion)
	assert.Equal(t, "client-id", gotClientID)
	assert.Equal(t, PaymentStatusSuccess, payments[0].Status)
}

func TestCashfreeNonArrayBodyMeansNoPayments(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"order_id":"order-1","order_status":"ACTIVE"}`))
	}, nil)

	payments, err := gw.OrderPayments(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestCashfreeTruncatedBodyIsError(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"cf_payment_id":"p1","payment_status":"SUC`))
	}, nil)

	_, err := gw.OrderPayments(context.Background(), "order-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse payments response")
}

func TestCashfreeErrorStatus(t *testing.T) {
	var observed int
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, func(status int, _ time.Duration) { observed = status })

	_, err := gw.OrderPayments(context.Background(), "order-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, observed)
}
