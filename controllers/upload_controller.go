package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wize-house/api-go/storage"
	"github.com/wize-house/api-go/utils"
)

type UploadController struct {
	DB       *gorm.DB
	Evidence storage.EvidenceStore
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type UploadCompleteRequest struct {
	Key string `json:"key" binding:"required"`
}

func NewUploadController(db *gorm.DB, evidence storage.EvidenceStore) *UploadController {
	return &UploadController{DB: db, Evidence: evidence}
}

// GetPresignedURL hands out a direct-to-bucket upload URL for evidence
// images. The resulting fileUrl goes into the activity's evidenceUrl field.
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)
	var req PresignedURLRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidEvidenceType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evidence file type"})
		return
	}

	if !isValidEvidenceSize(req.FileSize) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	upload, err := uc.Evidence.PresignPut(c.Request.Context(), user.UserID, req.FileName, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    upload,
		Message: "Presigned URL generated successfully",
	})
}

// ConfirmUpload verifies the client actually pushed the object.
func (uc *UploadController) ConfirmUpload(c *gin.Context) {
	var req UploadCompleteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := uc.Evidence.Exists(c.Request.Context(), req.Key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify file upload"})
		return
	}

	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found in storage"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"key":     req.Key,
			"fileUrl": uc.Evidence.PublicURL(req.Key),
		},
		Message: "Upload confirmed successfully",
	})
}

func isValidEvidenceType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic":
		return true
	}
	return false
}

func isValidEvidenceSize(fileSize int64) bool {
	// 10MB cap on evidence images
	return fileSize > 0 && fileSize <= 10*1024*1024
}
