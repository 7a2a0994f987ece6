package bookings

import (
	"eventvenue/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	booking := rg.Group("/events")
	booking.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		booking.POST("/:id/book-seats", controller.BookSeats)     // POST /api/v1/events/:id/book-seats
		booking.POST("/:id/book-tickets", controller.BookTickets) // POST /api/v1/events/:id/book-tickets
	}

	venueBooking := rg.Group("/venues")
	venueBooking.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		venueBooking.POST("/:id/book", controller.BookVenue) // POST /api/v1/venues/:id/book
	}

	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
		bookings.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel
	}

	venueBookings := rg.Group("/venue-bookings")
	venueBookings.Use(middleware.JWTAuth())
	{
		venueBookings.GET("/:id", controller.GetVenueBooking)            // GET /api/v1/venue-bookings/:id
		venueBookings.POST("/:id/cancel", controller.CancelVenueBooking) // POST /api/v1/venue-bookings/:id/cancel
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuth())
	{
		users.GET("/bookings", controller.GetMyBookings)            // GET /api/v1/users/bookings
		users.GET("/venue-bookings", controller.GetMyVenueBookings) // GET /api/v1/users/venue-bookings
	}

	vendor := rg.Group("/vendor/events")
	vendor.Use(middleware.JWTAuth(), middleware.RequireRoles("VENDOR", "ADMIN"))
	{
		vendor.GET("/:id/bookings", controller.GetEventBookings) // GET /api/v1/vendor/events/:id/bookings
	}

	vendorVenues := rg.Group("/vendor/venues")
	vendorVenues.Use(middleware.JWTAuth(), middleware.RequireRoles("VENDOR", "ADMIN"))
	{
		vendorVenues.GET("/:id/bookings", controller.GetVenueBookings) // GET /api/v1/vendor/venues/:id/bookings
	}
}
