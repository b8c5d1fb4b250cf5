package handlers

import (
	"net/http"

	"abstract-portal/helper"
	"abstract-portal/services"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	storageService services.StorageService
	Helper         *helper.HTTPHelper
}

func NewUploadHandler(storageService services.StorageService, h *helper.HTTPHelper) *UploadHandler {
	return &UploadHandler{storageService: storageService, Helper: h}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]
	submissionID := c.PostForm("submission_id")

	result, err := h.storageService.Upload(c.Request.Context(), files, submissionID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        len(result.UploadedFiles) > 0,
		"uploaded_files": result.UploadedFiles,
		"errors":         result.Errors,
		"total_files":    result.TotalFiles,
	})
}

// SignFile issues a redirect to a 10-minute signed URL for a stored object.
func (h *UploadHandler) SignFile(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing key"})
		return
	}

	url, err := h.storageService.SignedURL(c.Request.Context(), key)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, url)
}
