package handlers

import (
	"net/http"
	"strconv"

	"abstract-portal/helper"
	"abstract-portal/models"
	"abstract-portal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	abstractService services.AbstractService
	Helper          *helper.HTTPHelper
}

func NewAdminHandler(abstractService services.AbstractService, h *helper.HTTPHelper) *AdminHandler {
	return &AdminHandler{abstractService: abstractService, Helper: h}
}

// ListAbstracts returns the dashboard payload: the (optionally filtered)
// abstracts together with a statistics snapshot over the full set.
func (h *AdminHandler) ListAbstracts(c *gin.Context) {
	var params models.AbstractListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	abstracts, stats, err := h.abstractService.ListAll(params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"abstracts": toAbstractResponses(abstracts),
		"count":     len(abstracts),
		"stats":     stats,
		"filters": gin.H{
			"status":   params.Status,
			"category": params.Category,
			"limit":    params.Limit,
		},
	})
}

func (h *AdminHandler) Statistics(c *gin.Context) {
	stats, err := h.abstractService.Statistics()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid abstract ID"})
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	abstract, err := h.abstractService.UpdateStatus(uint(id), req.Status, req.Comments)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Status updated successfully",
		"abstract": toAbstractResponse(*abstract),
	})
}

func (h *AdminHandler) BulkUpdateStatus(c *gin.Context) {
	var req models.BulkUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.abstractService.BulkUpdateStatus(req.IDs, req.Status, req.Comments)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bulk status update processed",
		"result":  result,
	})
}
