package bookings

import (
	"github.com/gin-gonic/gin"

	"zombieland/internal/shared/middleware"
)

// SetupBookingRoutes configures every reservation route
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	rg.POST("/quotes", controller.Quote) // POST /api/v1/quotes - public price preview

	bookings := rg.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.POST("", controller.CreateReservation)            // POST /api/v1/bookings
		bookings.GET("/:id", controller.GetReservation)            // GET /api/v1/bookings/:id
		bookings.POST("/:id/cancel", controller.CancelReservation) // POST /api/v1/bookings/:id/cancel
		bookings.GET("/:id/ticket", controller.DownloadTicket)     // GET /api/v1/bookings/:id/ticket
	}

	me := rg.Group("/users/me")
	me.Use(auth)
	{
		me.GET("/bookings", controller.ListMyReservations) // GET /api/v1/users/me/bookings
	}

	admin := rg.Group("/admin/bookings")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.GET("", controller.ListReservations)
		admin.GET("/stats", controller.Stats)
		admin.POST("", controller.AdminCreateReservation)
		admin.PUT("/:id", controller.UpdateReservation)
		admin.DELETE("/:id", controller.DeleteReservation)
	}
}

// BOOKING FLOW
// 1. Visitor reads GET /periods once and picks a window on the calendar
// 2. POST /quotes previews the total, listing days without a period
// 3. POST /bookings re-prices server side and stores a CONFIRMED reservation
// 4. Visitor may cancel with POST /bookings/:id/cancel until the first day
// 5. The completion job marks finished reservations COMPLETED
