package middleware

import (
	"github.com/avirtanen/noshcart-backend/internal/app/cart"
	"github.com/avirtanen/noshcart-backend/internal/app/session"
	"github.com/gin-gonic/gin"
)

const (
	// SessionHeader carries the cart session id on every request
	SessionHeader = "X-Session-ID"

	sessionKey = "cart_session"
)

// SessionMiddleware resolves the cart session for the request. A
// missing or unknown id gets a fresh session; the id is echoed back in
// the response header so the client can persist it.
func SessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			// websocket upgrades cannot set headers
			id = c.Query("session_id")
		}
		sess := store.GetOrCreate(id)
		c.Set(sessionKey, sess)
		c.Header(SessionHeader, sess.ID())
		c.Next()
	}
}

// GetSession extracts the cart session from context
func GetSession(c *gin.Context) *cart.Session {
	if v, exists := c.Get(sessionKey); exists {
		if sess, ok := v.(*cart.Session); ok {
			return sess
		}
	}
	return nil
}
