package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wize-house/api-go/models"
)

type ValidationController struct {
	DB *gorm.DB
}

func NewValidationController(db *gorm.DB) *ValidationController {
	return &ValidationController{DB: db}
}

// ValidateNickname lets the registration form check availability up front.
func (vc *ValidationController) ValidateNickname(c *gin.Context) {
	nickname := c.Param("nickname")

	if err := validateNicknamePattern(nickname); err != nil {
		c.JSON(http.StatusOK, gin.H{"exists": false, "valid": false, "error": err.Error()})
		return
	}

	var user models.User
	result := vc.DB.Where("nickname = ?", nickname).First(&user)

	if result.Error == nil {
		c.JSON(http.StatusOK, gin.H{"exists": true, "valid": true})
	} else if result.Error == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{"exists": false, "valid": true})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check nickname"})
	}
}
