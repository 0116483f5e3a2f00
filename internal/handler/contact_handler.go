package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadthebusiness/platform-api/internal/models"
	"github.com/leadthebusiness/platform-api/internal/service"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
	"github.com/leadthebusiness/platform-api/pkg/response"
)

// ContactHandler exposes the public contact form endpoint.
type ContactHandler struct {
	contact *service.ContactService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Submit godoc
// @Summary Relay a contact form submission
// @Tags Contact
// @Accept json
// @Produce json
// @Param payload body models.ContactRequest true "Submission payload"
// @Success 200 {object} response.Envelope
// @Router /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.contact.Relay(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "message sent"}, nil)
}
