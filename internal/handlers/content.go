package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mhndckngyn/askdev-api/internal/content"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

// The vote, vote-status and edit-history endpoints behave identically for
// questions, answers and comments; the per-kind handlers delegate here.

func handleVote(c *gin.Context, svc *content.Service, log *slog.Logger, kind models.ContentType) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Type int `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vote.invalid-type"})
		return
	}

	result, err := svc.Vote(userID, kind, id, input.Type)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func handleVoteStatus(c *gin.Context, svc *content.Service, log *slog.Logger, kind models.ContentType) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	status, err := svc.VoteStatus(userID, kind, id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// handleEditHistory walks one step through an item's edit chain. Query
// params: ref (RFC 3339 timestamp of the edit being viewed) and direction
// (-1 older, 1 newer).
func handleEditHistory(c *gin.Context, svc *content.Service, log *slog.Logger, kind models.ContentType) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ref, err := time.Parse(time.RFC3339, c.Query("ref"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "edit-history.invalid-ref"})
		return
	}
	direction := 0
	switch c.Query("direction") {
	case "-1":
		direction = -1
	case "1":
		direction = 1
	}

	snap, err := svc.EditHistory(kind, id, ref, direction)
	if err != nil {
		respondError(c, log, err)
		return
	}
	if snap == nil {
		c.JSON(http.StatusOK, gin.H{"snapshot": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshot": snap})
}
