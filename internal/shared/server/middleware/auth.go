package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"archive-backend/internal/shared/auth"
	"archive-backend/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	usernameKey = "username"
	roleKey     = "role"
)

// TokenVerifier verifies bearer tokens into claims.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// Auth requires a valid bearer token and stores the caller identity in
// the request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			respond.Error(c, http.StatusUnauthorized, "login_required", "missing authorization header", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" || token == header {
			respond.Error(c, http.StatusUnauthorized, "login_required", "malformed authorization header", nil)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "invalid_token", "invalid or expired token", nil)
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(usernameKey, claims.Username)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID stored by Auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}

// RoleFromContext fetches the role stored by Auth middleware.
func RoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(roleKey)
}
