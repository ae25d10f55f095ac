package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhndckngyn/askdev-api/internal/content"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

// AdminHandler exposes the moderation surface: report review and bulk
// hide/unhide of content.
type AdminHandler struct {
	svc *content.Service
	log *slog.Logger
}

func NewAdminHandler(svc *content.Service, log *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: log}
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	reports, err := h.svc.ListReports()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// SetHidden toggles visibility on a batch of content items. Body:
// {"contentType": "...", "ids": [...], "hidden": bool}.
func (h *AdminHandler) SetHidden(c *gin.Context) {
	var input struct {
		ContentType models.ContentType `json:"contentType" binding:"required"`
		IDs         []int              `json:"ids" binding:"required,min=1"`
		Hidden      *bool              `json:"hidden" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "moderation.invalid-input"})
		return
	}

	updated, err := h.svc.SetHidden(input.ContentType, input.IDs, *input.Hidden)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
