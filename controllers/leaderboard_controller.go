package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wize-house/api-go/models"
	"github.com/wize-house/api-go/utils"
)

type LeaderboardController struct {
	DB *gorm.DB
}

type LeaderboardQuery struct {
	OrderBy  string `form:"orderBy" binding:"omitempty,oneof=points streak"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=10" binding:"min=1,max=50"`
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db}
}

type leaderboardRow struct {
	ID       uint   `json:"id" gorm:"column:id"`
	Nickname string `json:"nickname" gorm:"column:nickname"`
	FullName string `json:"full_name" gorm:"column:full_name"`
	Avatar   string `json:"avatar" gorm:"column:avatar"`
	Points   int    `json:"points" gorm:"column:points"`
	Streak   int    `json:"streak" gorm:"column:streak"`
	Rank     int    `json:"rank" gorm:"column:rank"`
}

// GetLeaderboard ranks the whole house by total points or current streak.
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	var query LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderColumn := "points"
	if query.OrderBy == "streak" {
		orderColumn = "streak"
	}

	user := utils.GetUser(c)

	rankedSelect := func() *gorm.DB {
		return lc.DB.Model(&models.User{}).
			Select("users.id, users.nickname, users.full_name, users.avatar, users.points, users.streak, " +
				"RANK() OVER (ORDER BY users." + orderColumn + " DESC) as rank")
	}

	var count int64
	if err := lc.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting users: " + err.Error()})
		return
	}

	offset := (query.Page - 1) * query.PageSize

	var rows []leaderboardRow
	if err := rankedSelect().Order("rank").Offset(offset).Limit(query.PageSize).Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching leaderboard: " + err.Error()})
		return
	}

	// The caller's own rank, even when they are off the current page.
	var userRank leaderboardRow
	rankQuery := lc.DB.Table("(?) as ranked", rankedSelect()).Where("ranked.id = ?", user.UserID)
	if err := rankQuery.Scan(&userRank).Error; err != nil || userRank.ID == 0 {
		userRank = leaderboardRow{ID: user.UserID, Nickname: user.Nickname}
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": rows,
		"user_rank":   userRank,
		"pagination": gin.H{
			"current_page": query.Page,
			"page_size":    query.PageSize,
			"total_items":  count,
			"total_pages":  math.Ceil(float64(count) / float64(query.PageSize)),
		},
		"filter": gin.H{
			"order_by": orderColumn,
		},
	})
}
