package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/wize-house/api-go/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController, leaderboardController *controllers.LeaderboardController) {
	users := protected.Group("/users")
	{
		users.GET("/search", userController.SearchUsers)
		users.GET("/:userId", userController.GetUserProfile)
	}

	protected.GET("/leaderboard", leaderboardController.GetLeaderboard)
}
