package reviews

import (
	"eventvenue/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReviewRoutes configures all review-related routes
func SetupReviewRoutes(rg *gin.RouterGroup, controller *Controller) {
	public := rg.Group("/events")
	{
		public.GET("/:id/reviews", controller.GetEventReviews)         // GET /api/v1/events/:id/reviews
		public.GET("/:id/reviews/summary", controller.GetEventSummary) // GET /api/v1/events/:id/reviews/summary
	}

	authed := rg.Group("/events")
	authed.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		authed.POST("/:id/reviews", controller.CreateReview) // POST /api/v1/events/:id/reviews
	}

	venuePublic := rg.Group("/venues")
	{
		venuePublic.GET("/:id/reviews", controller.GetVenueReviews)         // GET /api/v1/venues/:id/reviews
		venuePublic.GET("/:id/reviews/summary", controller.GetVenueSummary) // GET /api/v1/venues/:id/reviews/summary
	}

	venueAuthed := rg.Group("/venues")
	venueAuthed.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		venueAuthed.POST("/:id/reviews", controller.CreateVenueReview) // POST /api/v1/venues/:id/reviews
	}

	reviews := rg.Group("/reviews")
	reviews.Use(middleware.JWTAuth())
	{
		reviews.PUT("/:id", controller.UpdateReview)    // PUT /api/v1/reviews/:id
		reviews.DELETE("/:id", controller.DeleteReview) // DELETE /api/v1/reviews/:id
	}

	admin := rg.Group("/admin/reviews")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/pending", controller.GetPendingReviews)   // GET /api/v1/admin/reviews/pending
		admin.POST("/:id/approve", controller.ApproveReview)  // POST /api/v1/admin/reviews/:id/approve
		admin.POST("/:id/reject", controller.RejectReview)    // POST /api/v1/admin/reviews/:id/reject
	}
}
