package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	mem "nwptourism/pkg/memcache"
	"nwptourism/pkg/utils"
)

const (
	SessionCookieName = "nwp_admin"
	sessionContextKey = "admin_session"
	sessionTokenKey   = "admin_session_token"
)

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*mem.Session, error)
}

// SessionMiddleware attaches the admin session (if any) to the request.
// It never rejects a request; RequireAdmin does the gating.
func SessionMiddleware(resolver SessionResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			log.Warn("session lookup failed", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
			c.Next()
			return
		}
		if sess != nil {
			c.Set(sessionContextKey, sess)
			c.Set(sessionTokenKey, token)
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 before the handler runs unless the request
// carries an authenticated admin session.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.Admin {
			utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) *mem.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*mem.Session)
	return sess
}

// SessionToken returns the raw cookie value of the attached session, or the
// raw cookie when no session resolved.
func SessionToken(c *gin.Context) string {
	if token := c.GetString(sessionTokenKey); token != "" {
		return token
	}
	token, _ := c.Cookie(SessionCookieName)
	return token
}
