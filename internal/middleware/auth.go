package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/constants"
	apierrors "tasktrack/internal/errors"
	"tasktrack/internal/services"
)

// RequireAuth verifies the bearer token on incoming requests. A missing
// token is 401; a malformed, badly signed or expired token is 403.
func RequireAuth(tokens *services.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthenticated(c, "")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			apierrors.Forbidden(c, "Invalid authorization header")
			c.Abort()
			return
		}

		identity, err := tokens.Parse(tokenString)
		if err != nil {
			apierrors.Forbidden(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Store the identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, identity.UserID)
		c.Set(constants.ContextKeyUsername, identity.Username)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
