package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhndckngyn/askdev-api/internal/content"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

type CommentHandler struct {
	svc *content.Service
	log *slog.Logger
}

func NewCommentHandler(svc *content.Service, log *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: log}
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	answerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment.content-required"})
		return
	}

	comment, err := h.svc.CreateComment(userID, answerID, input.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment.content-required"})
		return
	}

	comment, err := h.svc.UpdateComment(id, userID, input.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteComment(id, userID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment.deleted"})
}

func (h *CommentHandler) ListByAnswer(c *gin.Context) {
	answerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.svc.CommentsByAnswer(answerID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Vote(c *gin.Context) {
	handleVote(c, h.svc, h.log, models.ContentComment)
}

func (h *CommentHandler) VoteStatus(c *gin.Context) {
	handleVoteStatus(c, h.svc, h.log, models.ContentComment)
}

func (h *CommentHandler) EditHistory(c *gin.Context) {
	handleEditHistory(c, h.svc, h.log, models.ContentComment)
}
