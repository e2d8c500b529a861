// Package middleware holds the gin middleware for the API surface.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crm/backend/internal/domain/tenant"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/dto"
)

const (
	// ViewerKey is the gin context key holding the session's viewer identity
	ViewerKey     = "viewer"
	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// Identity validates the bearer token and stores the resulting viewer in
// the request context. Requests without a valid identity are rejected;
// the middleware never authenticates, it only consumes the claim.
func Identity(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", "Missing bearer token"))
			return
		}
		claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", err.Error()))
			return
		}
		viewer, err := claims.Viewer()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", err.Error()))
			return
		}
		ctx, reqLogger := logger.WithTenantID(c.Request.Context(),
			logger.GetGinLogger(c), viewer.TenantID.String())
		c.Request = c.Request.WithContext(ctx)
		logger.SetGinLogger(c, reqLogger)

		c.Set(ViewerKey, viewer)
		c.Next()
	}
}

// GetViewer retrieves the viewer identity set by the Identity middleware
func GetViewer(c *gin.Context) (tenant.Viewer, bool) {
	v, ok := c.Get(ViewerKey)
	if !ok {
		return tenant.Viewer{}, false
	}
	viewer, ok := v.(tenant.Viewer)
	return viewer, ok
}
