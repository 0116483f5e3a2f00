package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadthebusiness/platform-api/internal/gateway"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
)

type mockPaymentGateway struct {
	payments []gateway.Payment
	err      error
	orderID  string
}

func (m *mockPaymentGateway) OrderPayments(ctx context.Context, orderID string) ([]gateway.Payment, error) {
	m.orderID = orderID
	if m.err != nil {
		return nil, m.err
	}
	return m.payments, nil
}

func TestPaymentServiceSuccessfulCount(t *testing.T) {
	gw := &mockPaymentGateway{payments: []gateway.Payment{
		{PaymentID: "p1", Status: gateway.PaymentStatusSuccess},
		{PaymentID: "p2", Status: "FAILED"},
		{PaymentID: "p3", Status: gateway.PaymentStatusSuccess},
		{PaymentID: "p4", Status: "PENDING"},
	}}
	svc := NewPaymentService(gw, "order-123", nil)

	count, err := svc.SuccessfulCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count.Count)
	assert.Equal(t, "order-123", gw.orderID)
}

func TestPaymentServiceNoPayments(t *testing.T) {
	svc := NewPaymentService(&mockPaymentGateway{}, "order-123", nil)

	count, err := svc.SuccessfulCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count.Count)
}

func TestPaymentServiceGatewayFailure(t *testing.T) {
	svc := NewPaymentService(&mockPaymentGateway{err: errors.New("gateway down")}, "order-123", nil)

	_, err := svc.SuccessfulCount(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
