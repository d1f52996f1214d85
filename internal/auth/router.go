package auth

import "github.com/gin-gonic/gin"

func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller, requireAuth gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
		auth.POST("/refresh", controller.RefreshToken)
		auth.POST("/logout", controller.Logout)

		protected := auth.Group("")
		protected.Use(requireAuth)
		{
			protected.PUT("/change-password", controller.ChangePassword)
		}
	}
}
