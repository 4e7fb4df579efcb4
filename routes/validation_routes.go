package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/wize-house/api-go/controllers"
)

func SetupValidationRoutes(protected *gin.RouterGroup, validationController *controllers.ValidationController) {
	validation := protected.Group("/validation")
	{
		validation.GET("/nickname/:nickname", validationController.ValidateNickname)
	}
}
