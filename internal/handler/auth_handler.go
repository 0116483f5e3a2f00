package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leadthebusiness/platform-api/internal/service"
	"github.com/leadthebusiness/platform-api/internal/session"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
	"github.com/leadthebusiness/platform-api/pkg/response"
)

// AuthHandler manages the password gates for the admin dashboard and the
// content studio. A successful login issues the surface's session cookies;
// protected routes are then checked by the gate middleware.
type AuthHandler struct {
	auth   *service.AuthService
	gates  map[string]*session.Gate
	secure bool
}

// NewAuthHandler constructs AuthHandler. gates maps surface name to its gate.
func NewAuthHandler(auth *service.AuthService, gates map[string]*session.Gate, secure bool) *AuthHandler {
	return &AuthHandler{auth: auth, gates: gates, secure: secure}
}

func (h *AuthHandler) gate(c *gin.Context) (*session.Gate, string, bool) {
	surface := c.Param("surface")
	gate, ok := h.gates[surface]
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown surface"))
		return nil, "", false
	}
	return gate, surface, true
}

// Login godoc
// @Summary Unlock a gated surface
// @Tags Auth
// @Accept json
// @Produce json
// @Param surface path string true "admin or studio"
// @Param payload body service.LoginRequest true "Password payload"
// @Success 200 {object} response.Envelope
// @Router /auth/{surface}/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	gate, surface, ok := h.gate(c)
	if !ok {
		return
	}
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.auth.Verify(surface, req); err != nil {
		response.Error(c, err)
		return
	}
	gate.Issue(session.NewCookieStore(c, h.secure), time.Now())
	response.JSON(c, http.StatusOK, gin.H{"authenticated": true}, nil)
}

// Logout godoc
// @Summary Clear a surface's session cookies
// @Tags Auth
// @Produce json
// @Param surface path string true "admin or studio"
// @Success 200 {object} response.Envelope
// @Router /auth/{surface}/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	gate, _, ok := h.gate(c)
	if !ok {
		return
	}
	gate.Revoke(session.NewCookieStore(c, h.secure))
	response.JSON(c, http.StatusOK, gin.H{"authenticated": false}, nil)
}

// Status godoc
// @Summary Report whether the surface's session is live
// @Tags Auth
// @Produce json
// @Param surface path string true "admin or studio"
// @Success 200 {object} response.Envelope
// @Router /auth/{surface}/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	gate, _, ok := h.gate(c)
	if !ok {
		return
	}
	live := gate.Check(session.NewCookieStore(c, h.secure), time.Now())
	response.JSON(c, http.StatusOK, gin.H{"authenticated": live}, nil)
}
