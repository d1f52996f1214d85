package periods

import (
	"github.com/gin-gonic/gin"

	"zombieland/internal/shared/middleware"
)

func SetupPeriodRoutes(router *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	public := router.Group("/periods")
	{
		public.GET("", controller.ListPeriods)   // GET /api/v1/periods - read once by the booking calendar
		public.GET("/:id", controller.GetPeriod) // GET /api/v1/periods/:id
	}

	admin := router.Group("/admin/periods")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.POST("", controller.CreatePeriod)
		admin.PUT("/:id", controller.UpdatePeriod)
		admin.DELETE("/:id", controller.DeletePeriod)
	}
}
