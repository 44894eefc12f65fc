package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prosync/prosync-api/internal/constants"
	apierrors "github.com/prosync/prosync-api/internal/errors"
	"github.com/prosync/prosync-api/internal/token"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth verifies the bearer token and stores the user ID in the
// context. Requests without a valid token are rejected.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearerToken(c)
		if tok == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := token.ParseUserID(jwtSecret, tok)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// OptionalAuth stores the user ID when a valid bearer token is present and
// lets the request through anonymously otherwise. Used on endpoints whose
// response varies by viewer.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := bearerToken(c); tok != "" {
			if userID, err := token.ParseUserID(jwtSecret, tok); err == nil {
				c.Set(constants.ContextKeyUserID, userID)
			}
		}
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

// ViewerID returns the user ID for endpoints that also serve anonymous
// callers; zero means anonymous.
func ViewerID(c *gin.Context) uint64 {
	userID, _ := GetUserID(c)
	return userID
}
