package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/wize-house/api-go/controllers"
)

func SetupActivityRoutes(protected *gin.RouterGroup, activityController *controllers.ActivityController) {
	activities := protected.Group("/activities")
	{
		activities.POST("", activityController.RecordActivity)
		activities.GET("/types", activityController.GetActivityTypes)
		activities.GET("/history", activityController.GetHistory)
	}

	users := protected.Group("/users")
	{
		users.GET("/:userId/history", activityController.GetMemberHistory)
	}
}
