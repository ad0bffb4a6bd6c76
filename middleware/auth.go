package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mara-ellison/maras-boutique-api/services"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "shop_session"

// RequireAuth gates admin-only routes. It reads the session cookie,
// validates the token against the session store, and aborts with 401
// before the handler runs so unauthorized requests cause no side
// effects.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || !services.GetSessionService().Validate(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Admin authentication required",
				},
			})
			return
		}

		c.Next()
	}
}

// SessionToken extracts the session token from the request cookie.
func SessionToken(c *gin.Context) (string, error) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return "", &AuthError{Code: "MISSING_SESSION", Message: "Session cookie not found"}
	}
	return token, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
