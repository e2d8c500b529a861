// Package handler implements the HTTP endpoints for the business modules.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/tenant"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides response helpers shared by all handlers
type BaseHandler struct{}

func (BaseHandler) respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.NewSuccessResponse(data))
}

func (BaseHandler) respondError(c *gin.Context, err error) {
	status := dto.StatusForError(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
	}
	c.JSON(status, dto.ErrorResponseFor(err))
}

func (BaseHandler) respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse("BAD_REQUEST", err.Error()))
}

// viewer pulls the identity placed by the middleware; requests reaching a
// handler without it are a routing misconfiguration.
func (BaseHandler) viewer(c *gin.Context) (tenant.Viewer, bool) {
	v, ok := middleware.GetViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", "Missing identity"))
		return tenant.Viewer{}, false
	}
	return v, true
}

func (BaseHandler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("BAD_REQUEST", "Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
