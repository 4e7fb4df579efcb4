package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/wize-house/api-go/controllers"
)

func SetupTeamRoutes(protected *gin.RouterGroup, teamController *controllers.TeamController) {
	team := protected.Group("/team")
	{
		team.GET("", teamController.GetTeam)
		team.GET("/:nickname", teamController.GetMemberTeam)
	}
}
