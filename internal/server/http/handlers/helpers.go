package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/beatstore/internal/access"
	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	pkgAuth "github.com/polkiloo/beatstore/internal/pkg/auth"
	"github.com/polkiloo/beatstore/internal/server/http/dto"
	"github.com/polkiloo/beatstore/internal/server/http/middleware"
)

// CurrentPrincipal extracts the authenticated caller from context.
func CurrentPrincipal(c *gin.Context) access.Principal {
	return middleware.CurrentPrincipal(c)
}

// adminGrant returns the grant issued by middleware; a missing grant is answered with 403.
func adminGrant(c *gin.Context) (access.AdminGrant, bool) {
	grant, ok := middleware.CurrentAdminGrant(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "admin role required"})
	}
	return grant, ok
}

// statusFor maps domain error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials), errors.Is(err, pkgAuth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrUnauthorized), errors.Is(err, pkgAuth.ErrInvalidLink):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidTransition), errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status; internal failures get a generic body.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
}

// queryLimit reads a positive integer query parameter, falling back to def.
func queryLimit(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
