package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadthebusiness/platform-api/internal/service"
	"github.com/leadthebusiness/platform-api/pkg/response"
)

// PaymentHandler exposes the successful-payment counter.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Count godoc
// @Summary Count successful payments for the configured order
// @Tags Payments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments/count [get]
func (h *PaymentHandler) Count(c *gin.Context) {
	count, err := h.payments.SuccessfulCount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, count, nil)
}
