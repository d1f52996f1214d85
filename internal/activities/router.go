package activities

import (
	"github.com/gin-gonic/gin"

	"zombieland/internal/shared/middleware"
)

func SetupActivityRoutes(router *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	// Public routes
	router.GET("/activities", controller.ListActivities)  // GET /api/v1/activities?search=&category_id=&page=&limit=
	router.GET("/activities/:id", controller.GetActivity) // GET /api/v1/activities/:id
	router.GET("/categories", controller.ListCategories)  // GET /api/v1/categories

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.POST("/activities", controller.CreateActivity)
		admin.PUT("/activities/:id", controller.UpdateActivity)
		admin.DELETE("/activities/:id", controller.DeleteActivity)

		admin.POST("/categories", controller.CreateCategory)
		admin.DELETE("/categories/:id", controller.DeleteCategory)
	}
}
