// File: /middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"eventhub-api/services"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextIsStaff  = "is_staff"
)

// TokenParser validates bearer tokens
type TokenParser interface {
	ParseToken(token string) (*services.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores the caller identity
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			abortWith(c, http.StatusUnauthorized, "Authorization required",
				"Provide a bearer token in the Authorization header")
			return
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, err.Error(), "")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextIsStaff, claims.IsStaff)
		c.Next()
	}
}

// RequireStaff lets only staff members through; it must run after AuthMiddleware
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsStaff) {
			abortWith(c, http.StatusForbidden, services.ErrPermissionDenied.Error(), "")
			return
		}
		c.Next()
	}
}
