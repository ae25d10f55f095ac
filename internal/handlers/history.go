package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mhndckngyn/askdev-api/internal/history"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

type HistoryHandler struct {
	recorder *history.Recorder
	log      *slog.Logger
}

func NewHistoryHandler(recorder *history.Recorder, log *slog.Logger) *HistoryHandler {
	return &HistoryHandler{recorder: recorder, log: log}
}

// List returns the caller's activity log page. Query params: page, limit,
// keyword (content title match), type (repeatable), startDate, endDate
// (RFC 3339).
func (h *HistoryHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	f := history.Filters{Query: c.Query("keyword")}
	for _, raw := range c.QueryArray("type") {
		typ := models.HistoryType(raw)
		if !typ.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "history.invalid-type"})
			return
		}
		f.Types = append(f.Types, typ)
	}
	if raw := c.Query("startDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "history.invalid-date"})
			return
		}
		f.Start = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "history.invalid-date"})
			return
		}
		f.End = &t
	}

	entries, pagination, err := h.recorder.List(userID, page, limit, f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries, "pagination": pagination})
}

func (h *HistoryHandler) DeleteOne(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.recorder.DeleteOne(id, userID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history.deleted"})
}

// DeleteMany removes a batch of entries, all of them or none.
func (h *HistoryHandler) DeleteMany(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		IDs []int `json:"ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "history.ids-required"})
		return
	}

	deleted, err := h.recorder.DeleteMany(input.IDs, userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *HistoryHandler) DeleteAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	deleted, err := h.recorder.DeleteAll(userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
