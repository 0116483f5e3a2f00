package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieStore adapts a gin request/response pair to the Store interface.
// Reads see the request's cookies; writes and deletes are applied to the
// response with path /, http-only and strict same-site, matching how the
// site set its auth cookies.
type CookieStore struct {
	c      *gin.Context
	secure bool
}

// NewCookieStore wraps the gin context. secure marks written cookies
// HTTPS-only.
func NewCookieStore(c *gin.Context, secure bool) *CookieStore {
	return &CookieStore{c: c, secure: secure}
}

// Get returns the named request cookie.
func (s *CookieStore) Get(name string) (string, bool) {
	value, err := s.c.Cookie(name)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// Set writes a response cookie expiring after ttl.
func (s *CookieStore) Set(name, value string, ttl time.Duration) {
	s.c.SetSameSite(http.SameSiteStrictMode)
	s.c.SetCookie(name, value, int(ttl.Seconds()), "/", "", s.secure, true)
}

// Delete expires the named cookie immediately.
func (s *CookieStore) Delete(name string) {
	s.c.SetSameSite(http.SameSiteStrictMode)
	s.c.SetCookie(name, "", -1, "/", "", s.secure, true)
}
