package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadthebusiness/platform-api/internal/middleware"
	"github.com/leadthebusiness/platform-api/internal/service"
	"github.com/leadthebusiness/platform-api/internal/session"
	"github.com/leadthebusiness/platform-api/pkg/config"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := service.NewAuthService(config.GatesConfig{
		AdminPassword:  "admin-secret",
		StudioPassword: "studio-secret",
	}, nil, nil)
	gates := map[string]*session.Gate{
		service.SurfaceAdmin:  session.NewGate("admin", time.Hour),
		service.SurfaceStudio: session.NewGate("studio", time.Hour),
	}
	h := NewAuthHandler(auth, gates, false)
	r := gin.New()
	r.POST("/auth/:surface/login", h.Login)
	r.POST("/auth/:surface/logout", h.Logout)
	r.GET("/auth/:surface/status", h.Status)
	r.GET("/admin/ping", middleware.Gate(gates[service.SurfaceAdmin], false), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})
	return r
}

func TestAuthHandlerLoginIssuesCookies(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/admin/login", bytes.NewBufferString(`{"password":"admin-secret"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	names := map[string]string{}
	for _, cookie := range cookies {
		names[cookie.Name] = cookie.Value
		assert.True(t, cookie.HttpOnly)
	}
	assert.Equal(t, "authenticated", names["admin_auth"])
	issued, err := strconv.ParseInt(names["admin_auth_time"], 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().UnixMilli(), issued, float64(5*time.Second.Milliseconds()))
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/admin/login", bytes.NewBufferString(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandlerLoginUnknownSurface(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/warehouse/login", bytes.NewBufferString(`{"password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthHandlerSessionRoundTrip(t *testing.T) {
	r := newAuthRouter()

	login := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/admin/login", bytes.NewBufferString(`{"password":"admin-secret"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(login, req)
	require.Equal(t, http.StatusOK, login.Code)

	ping := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	for _, cookie := range login.Result().Cookies() {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(ping, req)
	assert.Equal(t, http.StatusOK, ping.Code)
}

func TestAuthHandlerStatus(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/admin/status", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/auth/admin/status", nil)
	req.AddCookie(&http.Cookie{Name: "admin_auth", Value: "authenticated"})
	req.AddCookie(&http.Cookie{Name: "admin_auth_time", Value: strconv.FormatInt(time.Now().UnixMilli(), 10)})
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestAuthHandlerLogoutClearsCookies(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: "admin_auth", Value: "authenticated"})
	req.AddCookie(&http.Cookie{Name: "admin_auth_time", Value: strconv.FormatInt(time.Now().UnixMilli(), 10)})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Less(t, cookie.MaxAge, 0)
	}
}
