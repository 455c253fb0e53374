package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ngoctranq/linkvault/internal/domain/identity"
	"github.com/ngoctranq/linkvault/pkg/apperror"
	"github.com/ngoctranq/linkvault/pkg/logger"
)

const (
	GinContextKeyIdentity = "callerIdentity"
)

// AuthMiddleware resolves the bearer credential through the identity
// side-channel. Every failure mode (missing header, bad format, rejected or
// unresolvable token) produces the same 401 envelope; the reason only goes
// to the logs.
func AuthMiddleware(resolver identity.Resolver, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			abortUnauthenticated(c)
			return
		}

		caller, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			log.Warn("bearer credential rejected", zap.Error(err))
			abortUnauthenticated(c)
			return
		}

		c.Set(GinContextKeyIdentity, *caller)

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "AUTHENTICATION_REQUIRED"},
	})
}

func GetIdentityFromGinContext(c *gin.Context) (identity.Identity, bool) {
	val, ok := c.Get(GinContextKeyIdentity)
	if !ok {
		return identity.Identity{}, false
	}
	caller, ok := val.(identity.Identity)
	if !ok {
		return identity.Identity{}, false
	}
	return caller, true
}

// ErrorMiddleware drains errors pushed by handlers with c.Error and renders
// a single JSON envelope. Anything that is not an AppError is treated as an
// internal error so raw storage failures never reach the caller.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unhandled error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= http.StatusInternalServerError {
			log.Error("request failed", appErr, zap.String("path", c.Request.URL.Path))
		}
		c.JSON(status, appErr.ToJSON())
	}
}
