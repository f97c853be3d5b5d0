package controller

import (
	"net/http"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/middleware"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/storage"
	"github.com/gin-gonic/gin"
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

var allowedUploadFolders = map[string]bool{
	"restaurants": true,
	"menu":        true,
	"profiles":    true,
}

type UploadController struct {
	s3 *storage.S3Storage
}

func NewUploadController(s3 *storage.S3Storage) *UploadController {
	return &UploadController{s3: s3}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"`
}

// Presign returns a presigned PUT URL for a direct-to-S3 image upload
// POST /api/v1/upload/presign
func (ctrl *UploadController) Presign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.s3.ValidateContentType(req.ContentType, allowedImageTypes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPEG, PNG and WebP images are allowed"})
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = "restaurants"
	}
	if !allowedUploadFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload folder"})
		return
	}

	resp, err := ctrl.s3.GeneratePresignedURL(req.Filename, req.ContentType, folder)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"user_id": userID,
			"folder":  folder,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
