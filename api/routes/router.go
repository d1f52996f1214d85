// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"zombieland/internal/activities"
	"zombieland/internal/auth"
	"zombieland/internal/bookings"
	"zombieland/internal/notifications"
	"zombieland/internal/periods"
	"zombieland/internal/shared/config"
	"zombieland/internal/shared/database"
	"zombieland/internal/shared/middleware"
	"zombieland/internal/users"
	"zombieland/pkg/cache"

	_ "zombieland/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	cache     cache.Service
	publisher notifications.Publisher

	bookingService bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, publisher notifications.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		cache:     cacheService,
		publisher: publisher,
	}
}

// BookingService is available once SetupRoutes has run; the completion job uses it
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.JWTAuthWithConfig(r.config.JWT.Secret)
	pg := r.db.PostgreSQL

	userRepo := users.NewRepository(pg)
	periodService := periods.NewService(periods.NewRepository(pg), r.cache)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		auth.SetupAuthRoutes(api,
			auth.NewController(auth.NewService(userRepo, r.cache, r.config.JWT)),
			requireAuth)

		users.SetupUserRoutes(api,
			users.NewController(users.NewService(userRepo, r.cache)),
			requireAuth)

		periods.SetupPeriodRoutes(api, periods.NewController(periodService), requireAuth)

		activities.SetupActivityRoutes(api,
			activities.NewController(activities.NewService(activities.NewRepository(pg), r.cache)),
			requireAuth)

		r.bookingService = bookings.NewService(
			bookings.NewRepository(pg),
			periodService,
			userRepo,
			r.publisher,
			r.cache,
			r.config.Booking,
		)
		bookings.SetupBookingRoutes(api, bookings.NewController(r.bookingService), requireAuth)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "zombieland-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "zombieland-backend",
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
