package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leadthebusiness/platform-api/internal/session"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
	"github.com/leadthebusiness/platform-api/pkg/response"
)

// Gate protects routes behind a cookie session gate. An expired or absent
// session yields 401 and the stale cookies are cleared on the way out.
func Gate(gate *session.Gate, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := session.NewCookieStore(c, secure)
		if !gate.Check(store, time.Now()) {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "session expired or missing"))
			c.Abort()
			return
		}
		c.Next()
	}
}
