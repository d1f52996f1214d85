package users

import (
	"github.com/gin-gonic/gin"

	"zombieland/internal/shared/middleware"
)

func SetupUserRoutes(router *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	router.GET("/roles", controller.ListRoles) // GET /api/v1/roles

	me := router.Group("/users/me")
	me.Use(auth)
	{
		me.GET("", controller.GetMe)    // GET /api/v1/users/me
		me.PUT("", controller.UpdateMe) // PUT /api/v1/users/me
	}

	admin := router.Group("/admin/users")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.GET("", controller.ListUsers)
		admin.POST("", controller.CreateUser)
		admin.GET("/:id", controller.GetUser)
		admin.PUT("/:id", controller.UpdateUser)
		admin.DELETE("/:id", controller.DeleteUser)
	}
}
