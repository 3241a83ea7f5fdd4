package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/beatstore/internal/access"
	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	pkgAuth "github.com/polkiloo/beatstore/internal/pkg/auth"
	"github.com/polkiloo/beatstore/internal/server/http/dto"
)

const (
	// PrincipalContextKey is a gin context key for the verified caller.
	PrincipalContextKey = "principal"
	// AdminGrantContextKey is a gin context key for the admin capability.
	AdminGrantContextKey = "adminGrant"
	authCookieName       = "beatstore_token"
)

// PrincipalResolver turns a bearer token into a verified caller.
type PrincipalResolver interface {
	Principal(token string) (access.Principal, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
			return
		}

		principal, err := resolver.Principal(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) || errors.Is(err, domainErrors.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// RequireAdmin issues an admin grant for the authenticated caller or rejects the request.
// It must run after AuthRequired.
func RequireAdmin(gate *access.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		grant, err := gate.RequireAdmin(CurrentPrincipal(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "admin role required"})
			return
		}
		c.Set(AdminGrantContextKey, grant)
		c.Next()
	}
}

// CurrentPrincipal returns the verified caller or the anonymous principal.
func CurrentPrincipal(c *gin.Context) access.Principal {
	val, ok := c.Get(PrincipalContextKey)
	if !ok {
		return access.Principal{}
	}
	p, _ := val.(access.Principal)
	return p
}

// CurrentAdminGrant returns the grant stored by RequireAdmin.
func CurrentAdminGrant(c *gin.Context) (access.AdminGrant, bool) {
	val, ok := c.Get(AdminGrantContextKey)
	if !ok {
		return access.AdminGrant{}, false
	}
	grant, ok := val.(access.AdminGrant)
	return grant, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
