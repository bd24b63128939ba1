package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rsnteam/telemart-golang/internal/logger"
	"github.com/rsnteam/telemart-golang/internal/session"
)

// AuthMiddleware is the security guard in front of the cart routes. It
// reads the session cookie, verifies the token signature, resolves the
// session id in the store and attaches the user id to the context. Every
// failure mode short-circuits with the same 401 body and no side effects.
func AuthMiddleware(sessions session.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		sid, err := session.ParseToken(cookie, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		userID, err := sessions.GetUserID(c.Request.Context(), sid)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			} else {
				logger.Log.Errorw("session lookup failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			}
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("sessionID", sid)
		c.Next()
	}
}
