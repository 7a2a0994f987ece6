package layout

import (
	"eventvenue/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLayoutRoutes(rg *gin.RouterGroup, controller *Controller) {

	// PUBLIC LAYOUT VIEWS

	events := rg.Group("/events")
	{
		// Compiled inventory plus currently booked seat ids
		events.GET("/:id/seat-layout", controller.GetSeatLayout) // GET /api/v1/events/:id/seat-layout
	}

	// VIEWER SELECTION

	viewer := rg.Group("/events")
	viewer.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		viewer.POST("/:id/seat-layout/reconcile", controller.ReconcileSelection) // POST /api/v1/events/:id/seat-layout/reconcile
	}

	// VENDOR CONFIGURATION

	vendor := rg.Group("/events")
	vendor.Use(middleware.JWTAuth(), middleware.RequireRoles("VENDOR", "ADMIN"))
	{
		vendor.PUT("/:id/seat-categories", controller.ReplaceCategories) // PUT /api/v1/events/:id/seat-categories
	}

	// Stateless compile of a draft configuration, for the vendor form
	preview := rg.Group("/seat-layout")
	preview.Use(middleware.JWTAuth(), middleware.RequireRoles("VENDOR", "ADMIN"))
	{
		preview.POST("/preview", controller.PreviewLayout) // POST /api/v1/seat-layout/preview
	}
}
