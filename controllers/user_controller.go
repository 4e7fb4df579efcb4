package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wize-house/api-go/services"
	"github.com/wize-house/api-go/utils"
)

type UserController struct {
	DB      *gorm.DB
	Service *services.ActivityService
}

func NewUserController(db *gorm.DB, service *services.ActivityService) *UserController {
	return &UserController{DB: db, Service: service}
}

// SearchUsers backs the upline and coachee pickers.
func (uc *UserController) SearchUsers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	users, err := uc.Service.SearchMembers(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]gin.H, 0, len(users))
	for _, u := range users {
		results = append(results, gin.H{
			"id":       u.ID,
			"nickname": u.Nickname,
			"fullName": u.FullName,
			"avatar":   u.Avatar,
		})
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: results})
}

// GetUserProfile shows another member's public card: identity, aggregate and
// direct downline count. The ledger itself lives on the history endpoint.
func (uc *UserController) GetUserProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	target, err := uc.Service.GetProfile(c.Request.Context(), uint(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	downlines, err := uc.Service.FindDownlines(c.Request.Context(), target.Nickname)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":            target.ID,
			"nickname":      target.Nickname,
			"fullName":      target.FullName,
			"avatar":        target.Avatar,
			"upline":        target.Upline,
			"points":        target.Points,
			"streak":        target.Streak,
			"joinedAt":      target.CreatedAt,
			"downlineCount": len(downlines),
			"isOwnProfile":  currentUser.UserID == target.ID,
		},
	})
}
