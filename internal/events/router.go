package events

import (
	"eventvenue/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - anyone can browse published events
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.GetEvents)                  // GET /api/v1/events
		publicEvents.GET("/upcoming", controller.GetUpcomingEvents) // GET /api/v1/events/upcoming
		publicEvents.GET("/:id", controller.GetEvent)               // GET /api/v1/events/:id
	}

	// Vendor routes - event lifecycle management
	vendorEvents := router.Group("/vendor/events")
	vendorEvents.Use(middleware.JWTAuth(), middleware.RequireRoles("VENDOR", "ADMIN"))
	{
		vendorEvents.POST("", controller.CreateEvent)                    // POST /api/v1/vendor/events
		vendorEvents.GET("", controller.GetMyEvents)                     // GET /api/v1/vendor/events
		vendorEvents.PUT("/:id", controller.UpdateEvent)                 // PUT /api/v1/vendor/events/:id
		vendorEvents.DELETE("/:id", controller.DeleteEvent)              // DELETE /api/v1/vendor/events/:id
		vendorEvents.POST("/:id/publish", controller.PublishEvent)       // POST /api/v1/vendor/events/:id/publish
		vendorEvents.POST("/:id/reschedule", controller.RescheduleEvent) // POST /api/v1/vendor/events/:id/reschedule
		vendorEvents.POST("/:id/cancel", controller.CancelEvent)         // POST /api/v1/vendor/events/:id/cancel
	}
}
