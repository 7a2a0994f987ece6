package analytics

import (
	"eventvenue/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes configures all analytics routes
func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller *Controller) {
	vendor := rg.Group("/vendor")
	vendor.Use(middleware.JWTAuth(), middleware.RequireRoles("VENDOR", "ADMIN"))
	{
		vendor.GET("/analytics", controller.GetVendorAnalytics)           // GET /api/v1/vendor/analytics
		vendor.GET("/events/:id/analytics", controller.GetEventAnalytics) // GET /api/v1/vendor/events/:id/analytics
	}

	admin := rg.Group("/admin/analytics")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", controller.GetPlatformAnalytics) // GET /api/v1/admin/analytics/dashboard
	}
}
