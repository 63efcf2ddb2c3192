// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/surfshop-backend/internal/pkg/auth"
)

const (
	ctxAdminEmail  = "admin_email"
	ctxTokenClaims = "token_claims"
)

// TokenValidator is the slice of auth.JWTManager the middleware needs
type TokenValidator interface {
	ValidateAdminToken(tokenString string) (*auth.Claims, error)
}

// AdminAuth requires a bearer token carrying the admin flag
func AdminAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := validator.ValidateAdminToken(tokenString)
		if errors.Is(err, auth.ErrNotAdmin) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxAdminEmail, claims.Email)
		c.Set(ctxTokenClaims, claims)

		c.Next()
	}
}

// GetAdminEmailFromContext extracts the admin email set by AdminAuth
func GetAdminEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(ctxAdminEmail)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}
