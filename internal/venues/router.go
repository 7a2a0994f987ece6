package venues

import (
	"eventvenue/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public browsing routes
	public := rg.Group("/venues")
	{
		public.GET("", controller.GetVenues)    // GET /api/v1/venues
		public.GET("/:id", controller.GetVenue) // GET /api/v1/venues/:id
	}

	// Vendor management routes
	vendor := rg.Group("/vendor/venues")
	vendor.Use(middleware.JWTAuth(), middleware.RequireRoles("VENDOR", "ADMIN"))
	{
		vendor.POST("", controller.CreateVenue)       // POST /api/v1/vendor/venues
		vendor.GET("", controller.GetMyVenues)        // GET /api/v1/vendor/venues
		vendor.PUT("/:id", controller.UpdateVenue)    // PUT /api/v1/vendor/venues/:id
		vendor.DELETE("/:id", controller.DeleteVenue) // DELETE /api/v1/vendor/venues/:id
	}
}
