package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/wize-house/api-go/controllers"
	"github.com/wize-house/api-go/middleware"
)

func SetupAdminRoutes(protected *gin.RouterGroup, adminController *controllers.AdminController) {
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/users", adminController.ListUsers)
		admin.POST("/users/:userId/reset", adminController.ResetHistory)
		admin.POST("/users/:userId/recompute", adminController.RecomputeAggregate)
	}
}
