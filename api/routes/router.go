// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"eventvenue/internal/analytics"
	"eventvenue/internal/auth"
	"eventvenue/internal/bookings"
	"eventvenue/internal/events"
	"eventvenue/internal/layout"
	"eventvenue/internal/notifications"
	"eventvenue/internal/reviews"
	"eventvenue/internal/shared/config"
	"eventvenue/internal/shared/database"
	"eventvenue/internal/venues"
	"eventvenue/internal/wallet"
	"eventvenue/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config              *config.Config
	db                  *database.DB
	notificationService notifications.NotificationService

	// Shared services, kept for cross-module injection
	cacheService  cache.Service
	authRepo      auth.Repository
	venueService  venues.Service
	layoutService layout.Service
	walletService wallet.Service
	eventService  events.Service
}

// NewRouter creates a new router instance. The notification service may be
// nil; booking flows then run without emails.
func NewRouter(cfg *config.Config, db *database.DB, notificationService notifications.NotificationService) *Router {
	return &Router{
		config:              cfg,
		db:                  db,
		notificationService: notificationService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupVenueRoutes(api)

		// Layout and wallet come before events: publish freezes the
		// layout and charges the vendor fee through these services.
		r.setupLayoutRoutes(api)
		r.setupWalletRoutes(api)
		r.setupEventRoutes(api)

		r.setupBookingRoutes(api)
		r.setupReviewRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "eventvenue-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "eventvenue-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	// The repo doubles as the user directory for notification recipients
	r.authRepo = authRepo

	authRouter.SetupRoutes(rg)
}

// setupVenueRoutes configures venue management routes
func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	venueRepo := venues.NewRepository(r.db.GetPostgreSQL())
	r.venueService = venues.NewService(venueRepo)
	venueController := venues.NewController(r.venueService)

	venues.SetupVenueRoutes(rg, venueController)
}

// setupLayoutRoutes configures seat layout routes
func (r *Router) setupLayoutRoutes(rg *gin.RouterGroup) {
	layoutRepo := layout.NewRepository(r.db.GetPostgreSQL(), r.db.GetRedisClient())
	layoutService := layout.NewService(layoutRepo, r.config)
	if r.cacheService != nil {
		layoutService.SetCacheService(r.cacheService)
	}
	layoutController := layout.NewController(layoutService)

	r.layoutService = layoutService

	layout.SetupLayoutRoutes(rg, layoutController)
}

// setupWalletRoutes configures points wallet routes
func (r *Router) setupWalletRoutes(rg *gin.RouterGroup) {
	walletRepo := wallet.NewRepository(r.db.GetPostgreSQL())
	walletService := wallet.NewService(walletRepo, r.config)
	if r.cacheService != nil {
		walletService.SetCacheService(r.cacheService)
	}
	walletController := wallet.NewController(walletService)

	r.walletService = walletService

	wallet.SetupWalletRoutes(rg, walletController)
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo, r.config)

	// Publish freezes the seat layout and charges the vendor fee
	eventService.SetLayoutService(r.layoutService)
	eventService.SetWalletService(r.walletService)
	if r.cacheService != nil {
		eventService.SetCacheService(r.cacheService)
	}

	eventController := events.NewController(eventService)

	r.eventService = eventService

	events.SetupEventRoutes(rg, eventController)
}

// setupBookingRoutes configures booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.config, r.eventService, r.layoutService, r.walletService, r.venueService)

	// Vendor reschedule/cancel fans refunds out through the booking service
	r.eventService.SetRefundProcessor(bookingService)

	if r.notificationService != nil {
		userDirectory := auth.NewUserServiceAdapter(r.authRepo)
		adapter := notifications.NewBookingServiceAdapter(r.notificationService, userDirectory)
		bookingService.SetNotificationService(adapter)
	}

	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupReviewRoutes configures review and moderation routes
func (r *Router) setupReviewRoutes(rg *gin.RouterGroup) {
	reviewRepo := reviews.NewRepository(r.db.GetPostgreSQL())
	reviewService := reviews.NewService(reviewRepo)
	if r.cacheService != nil {
		reviewService.SetCacheService(r.cacheService)
	}
	reviewController := reviews.NewController(reviewService)

	reviews.SetupReviewRoutes(rg, reviewController)
}

// setupAnalyticsRoutes configures vendor and admin analytics routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo)
	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService)
	}
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
