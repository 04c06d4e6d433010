package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/middleware"
	"github.com/totodo713/miometory-sub007/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route acts on behalf of an identified member.
	v1 := r.Group("/api/v1", middleware.RequireActor())

	registerWorkLogRoutes(v1, services.WorkLog)
	registerMonthlyApprovalRoutes(v1, services.MonthlyApproval)
	registerDailyApprovalRoutes(v1, services.DailyApproval)
	registerCalendarRoutes(v1, services.CalendarQuery)
	registerFiscalRoutes(v1, services.Fiscal)
	registerReconcileRoutes(v1, services.Reconciler)
}
