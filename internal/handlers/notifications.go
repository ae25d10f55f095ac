package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhndckngyn/askdev-api/internal/notification"
)

type NotificationHandler struct {
	notifier *notification.Notifier
	log      *slog.Logger
}

func NewNotificationHandler(notifier *notification.Notifier, log *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifier: notifier, log: log}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := h.notifier.List(userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// SetRead flips the read flag on one inbox entry. Body: {"read": bool}.
func (h *NotificationHandler) SetRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Read *bool `json:"read" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notification.read-required"})
		return
	}

	if err := h.notifier.SetRead(id, userID, *input.Read); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification.updated"})
}

func (h *NotificationHandler) SetAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Read *bool `json:"read" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notification.read-required"})
		return
	}

	if err := h.notifier.SetAllRead(userID, *input.Read); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification.updated"})
}

func (h *NotificationHandler) DeleteOne(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notifier.DeleteOne(id, userID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification.deleted"})
}

func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notifier.DeleteAll(userID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification.deleted"})
}
