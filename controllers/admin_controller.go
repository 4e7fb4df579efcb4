package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wize-house/api-go/services"
	"github.com/wize-house/api-go/utils"
)

type AdminController struct {
	DB      *gorm.DB
	Service *services.ActivityService
}

func NewAdminController(db *gorm.DB, service *services.ActivityService) *AdminController {
	return &AdminController{DB: db, Service: service}
}

// ListUsers returns every member with their aggregates for the admin board.
func (ac *AdminController) ListUsers(c *gin.Context) {
	users, err := ac.Service.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: users})
}

// ResetHistory wipes a member's ledger and zeroes points and streak. This is
// the only path on which points decrease.
func (ac *AdminController) ResetHistory(c *gin.Context) {
	admin := utils.GetUser(c)
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	if err := ac.Service.ResetHistory(c.Request.Context(), uint(userID)); err != nil {
		respondError(c, err)
		return
	}

	utils.Sugar.Infow("history reset", "admin_id", admin.UserID, "user_id", userID)

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "User history reset"})
}

// RecomputeAggregate rebuilds a member's points/streak from the ledger. Used
// to repair aggregates left stale by a failed write.
func (ac *AdminController) RecomputeAggregate(c *gin.Context) {
	admin := utils.GetUser(c)
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	result, err := ac.Service.RecomputeAggregate(c.Request.Context(), uint(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Sugar.Infow("aggregate recomputed", "admin_id", admin.UserID, "user_id", userID,
		"points", result.Points, "streak", result.Streak)

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: result, Message: "Aggregate recomputed"})
}
