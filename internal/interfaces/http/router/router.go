// Package router assembles the gin engine: middleware chain and routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/application/directory"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
)

// Services bundles the application services the router exposes
type Services struct {
	Vendors *directory.VendorService
	Leads   *directory.LeadService
	Staff   *directory.StaffService
	Dialer  *directory.DialerService
	Exports *directory.ExportService
}

// New builds the gin engine with logging, recovery and identity middleware
func New(svc Services, jwtService *auth.JWTService, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Identity(jwtService))

	vendors := handler.NewVendorHandler(svc.Vendors)
	api.GET("/vendors", vendors.List)
	api.POST("/vendors", vendors.Create)
	api.POST("/vendors/:id/disposition", vendors.Disposition)
	api.DELETE("/vendors/:id", vendors.Delete)
	api.GET("/enquiries", vendors.ListEnquiries)
	api.POST("/enquiries", vendors.CreateEnquiry)
	api.POST("/enquiries/:id/promote", vendors.PromoteEnquiry)

	leads := handler.NewLeadHandler(svc.Leads)
	api.GET("/leads", leads.List)
	api.POST("/leads", leads.Create)
	api.POST("/leads/:id/disposition", leads.Disposition)
	api.DELETE("/leads/:id", leads.Delete)

	staff := handler.NewStaffHandler(svc.Staff)
	api.GET("/staff", staff.List)
	api.POST("/staff", staff.Create)
	api.POST("/staff/:id/disposition", staff.Disposition)
	api.DELETE("/staff/:id", staff.Delete)

	dialer := handler.NewDialerHandler(svc.Dialer)
	api.GET("/dialer/contacts", dialer.List)
	api.POST("/dialer/contacts", dialer.Import)
	api.GET("/dialer/due", dialer.DueFollowUps)
	api.POST("/dialer/session", dialer.StartSession)
	api.POST("/dialer/session/disposition", dialer.Disposition)
	api.POST("/dialer/session/jump/:id", dialer.Jump)
	api.DELETE("/dialer/session", dialer.EndSession)

	exports := handler.NewExportHandler(svc.Exports)
	api.GET("/exports/vendors", exports.Vendors)
	api.GET("/exports/leads", exports.Leads)

	return engine
}
