package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wize-house/api-go/errorx"
	"github.com/wize-house/api-go/services"
	"github.com/wize-house/api-go/utils"
)

type TeamController struct {
	DB      *gorm.DB
	Service *services.ActivityService
}

func NewTeamController(db *gorm.DB, service *services.ActivityService) *TeamController {
	return &TeamController{DB: db, Service: service}
}

// GetTeam returns the caller's downlines expanded two levels deep, plus the
// upline record when it resolves to a registered member.
func (tc *TeamController) GetTeam(c *gin.Context) {
	user := utils.GetUser(c)

	profile, err := tc.Service.GetProfile(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	downlines, err := tc.Service.ListHierarchy(c.Request.Context(), profile.Nickname)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"downlines": downlines,
	}

	if profile.Upline != "" {
		upline, err := tc.Service.GetMemberByNickname(c.Request.Context(), profile.Upline)
		switch {
		case err == nil:
			response["upline"] = gin.H{
				"id":       upline.ID,
				"nickname": upline.Nickname,
				"fullName": upline.FullName,
				"avatar":   upline.Avatar,
			}
		case errorx.CodeOf(err) == errorx.NotFound:
			// The upline name may point at someone who never registered.
			response["upline"] = nil
		default:
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: response})
}

// GetMemberTeam expands any member's downline tree by nickname.
func (tc *TeamController) GetMemberTeam(c *gin.Context) {
	nickname := c.Param("nickname")
	if nickname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nickname is required"})
		return
	}

	downlines, err := tc.Service.ListHierarchy(c.Request.Context(), nickname)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: gin.H{"downlines": downlines}})
}
