package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wize-house/api-go/models"
	"github.com/wize-house/api-go/services"
	"github.com/wize-house/api-go/types"
	"github.com/wize-house/api-go/utils"
)

type ActivityController struct {
	DB      *gorm.DB
	Service *services.ActivityService
}

func NewActivityController(db *gorm.DB, service *services.ActivityService) *ActivityController {
	return &ActivityController{DB: db, Service: service}
}

// RecordActivity godoc
// @Summary Record a daily activity
// @Description Records a check-in, book/clip summary, coaching session or sale and updates points/streak
// @Tags activities
// @Accept json
// @Produce json
// @Param activity body types.ActivityInput true "Activity payload"
// @Success 201 {object} services.RecordResult
// @Router /activities [post]
func (ac *ActivityController) RecordActivity(c *gin.Context) {
	user := utils.GetUser(c)
	var input types.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.Service.RecordActivity(c.Request.Context(), user.UserID, input)
	if err != nil {
		utils.Sugar.Warnw("record activity failed", "user_id", user.UserID, "type", input.Type, "err", err)
		respondError(c, err)
		return
	}

	utils.Sugar.Infow("activity recorded",
		"user_id", user.UserID,
		"type", input.Type,
		"date_key", result.Activity.DateKey,
		"points_awarded", result.PointsAwarded,
		"streak", result.Streak,
	)

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    result,
		Message: "Activity recorded",
	})
}

// GetHistory returns the caller's own ledger, newest first.
func (ac *ActivityController) GetHistory(c *gin.Context) {
	user := utils.GetUser(c)
	ac.respondHistory(c, user.UserID)
}

// GetMemberHistory returns another member's ledger. Members browse their
// downlines' calendars, so this is open to any authenticated caller.
func (ac *ActivityController) GetMemberHistory(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	ac.respondHistory(c, uint(userID))
}

func (ac *ActivityController) respondHistory(c *gin.Context, userID uint) {
	profile, err := ac.Service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"user": gin.H{
				"id":       profile.ID,
				"nickname": profile.Nickname,
				"fullName": profile.FullName,
				"points":   profile.Points,
				"streak":   profile.Streak,
			},
			"history": profile.History,
		},
	})
}

// GetActivityTypes lists the recordable types; the client renders its pickers
// off this instead of hardcoding.
func (ac *ActivityController) GetActivityTypes(c *gin.Context) {
	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: []gin.H{
			{"id": models.ActivityCheckin, "label": "Check-in"},
			{"id": models.ActivityBook, "label": "Book Summary"},
			{"id": models.ActivityClip, "label": "Clip Summary"},
			{"id": models.ActivityCoaching, "label": "Coaching"},
			{"id": models.ActivitySale, "label": "Sale / Slip"},
		},
	})
}
