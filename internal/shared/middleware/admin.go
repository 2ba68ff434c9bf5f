package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	adminModel "megheza-backend/internal/domains/admin/model"
	"megheza-backend/internal/shared/response"
	"megheza-backend/pkg/jwt"
)

// ClaimsKey is the gin context key holding the admin *jwt.Claims.
const ClaimsKey = "admin_claims"

// Authenticator validates admin bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

// AdminAuth requires a valid, unrevoked "Authorization: Bearer <token>" header.
func AdminAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.ErrorResponse(c, http.StatusUnauthorized, adminModel.ErrCodeUnauthorized, "Admin session required")
			c.Abort()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, adminModel.ErrAuthUnavailable) {
				response.ErrorResponse(c, http.StatusServiceUnavailable, adminModel.ErrCodeAuthUnavailable, "Please try again later")
			} else {
				response.ErrorResponse(c, http.StatusUnauthorized, adminModel.ErrCodeUnauthorized, "Admin session required")
			}
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// AdminClaims returns the claims stored by AdminAuth.
func AdminClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
