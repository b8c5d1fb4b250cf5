package handlers

import (
	"net/http"
	"strconv"

	"abstract-portal/helper"
	"abstract-portal/models"
	"abstract-portal/services"

	"github.com/gin-gonic/gin"
)

type AbstractHandler struct {
	abstractService services.AbstractService
	storageService  services.StorageService
	Helper          *helper.HTTPHelper
}

func NewAbstractHandler(abstractService services.AbstractService, storageService services.StorageService, h *helper.HTTPHelper) *AbstractHandler {
	return &AbstractHandler{
		abstractService: abstractService,
		storageService:  storageService,
		Helper:          h,
	}
}

type abstractResponse struct {
	models.Abstract
	HasFile bool `json:"has_file"`
}

func toAbstractResponse(a models.Abstract) abstractResponse {
	return abstractResponse{Abstract: a, HasFile: a.HasFile()}
}

func toAbstractResponses(abstracts []models.Abstract) []abstractResponse {
	out := make([]abstractResponse, 0, len(abstracts))
	for _, a := range abstracts {
		out = append(out, toAbstractResponse(a))
	}
	return out
}

func (h *AbstractHandler) Submit(c *gin.Context) {
	userID, _ := c.Get("user_id")
	email, _ := c.Get("email")

	var req models.SubmitAbstractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	abstract, err := h.abstractService.Submit(req, userID.(uint), email.(string))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Abstract submitted successfully",
		"abstract_id": abstract.ID,
		"abstract":    toAbstractResponse(*abstract),
	})
}

func (h *AbstractHandler) GetUserAbstracts(c *gin.Context) {
	userID, _ := c.Get("user_id")

	abstracts, err := h.abstractService.ListByUser(userID.(uint))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"abstracts": toAbstractResponses(abstracts),
		"count":     len(abstracts),
	})
}

func (h *AbstractHandler) Update(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid abstract ID"})
		return
	}

	var req models.UpdateAbstractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	abstract, err := h.abstractService.UpdateContent(uint(id), req, userID.(uint))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Abstract updated successfully",
		"abstract": toAbstractResponse(*abstract),
	})
}

func (h *AbstractHandler) Delete(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid abstract ID"})
		return
	}

	if err := h.abstractService.Delete(uint(id), userID.(uint)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Abstract deleted successfully"})
}

// Download returns signed URLs for every file attached to an abstract. One
// file still comes back as a list; clients follow the URLs directly.
func (h *AbstractHandler) Download(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid abstract ID"})
		return
	}

	files, err := h.abstractService.GetFiles(uint(id))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if len(files) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "No file attached to this abstract",
		})
		return
	}

	urls := h.storageService.SignedURLsForFiles(c.Request.Context(), files)
	if len(urls) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Could not generate signed URLs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"files":   urls,
		"count":   len(urls),
	})
}
