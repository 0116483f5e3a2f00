package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/leadthebusiness/platform-api/internal/gateway"
	"github.com/leadthebusiness/platform-api/internal/models"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
)

type paymentGateway interface {
	OrderPayments(ctx context.Context, orderID string) ([]gateway.Payment, error)
}

// PaymentService exposes the number of successful payments recorded against
// the configured gateway order. The marketing site shows it as a live
// seats-taken counter.
type PaymentService struct {
	gateway paymentGateway
	orderID string
	logger  *zap.Logger
}

// NewPaymentService constructs PaymentService.
func NewPaymentService(gw paymentGateway, orderID string, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{gateway: gw, orderID: orderID, logger: logger}
}

// SuccessfulCount counts payments whose gateway status is SUCCESS. A missing
// or payment-free order counts as zero rather than an error.
func (s *PaymentService) SuccessfulCount(ctx context.Context) (*models.PaymentCount, error) {
	payments, err := s.gateway.OrderPayments(ctx, s.orderID)
	if err != nil {
		s.logger.Error("payment lookup failed", zap.String("order_id", s.orderID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch payments")
	}
	count := 0
	for _, p := range payments {
		if p.Status == gateway.PaymentStatusSuccess {
			count++
		}
	}
	return &models.PaymentCount{Count: count}, nil
}
