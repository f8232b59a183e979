package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	RegisterCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, services.Account)
	registerEntryRoutes(v1, services.Posting)
	registerDocumentRoutes(v1, services.Posting)
	registerPeriodRoutes(v1, services.Period)
	registerRateRoutes(v1, services.Fx)
	registerReportingRoutes(v1, services.Reporting)
}
