package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhndckngyn/askdev-api/internal/content"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

type AnswerHandler struct {
	svc *content.Service
	log *slog.Logger
}

func NewAnswerHandler(svc *content.Service, log *slog.Logger) *AnswerHandler {
	return &AnswerHandler{svc: svc, log: log}
}

func answerInput(c *gin.Context) (content.AnswerInput, func(), bool) {
	in := content.AnswerInput{
		Content:       c.PostForm("content"),
		CurrentImages: c.PostFormArray("currentImages"),
	}
	if in.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer.content-required"})
		return in, nil, false
	}

	files, opened, err := formFiles(c, "images")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload.invalid-file"})
		return in, nil, false
	}
	in.Files = files
	return in, func() { closeAll(opened) }, true
}

func (h *AnswerHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, cleanup, ok := answerInput(c)
	if !ok {
		return
	}
	defer cleanup()

	ans, err := h.svc.CreateAnswer(c.Request.Context(), userID, questionID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, ans)
}

func (h *AnswerHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, cleanup, ok := answerInput(c)
	if !ok {
		return
	}
	defer cleanup()

	ans, err := h.svc.UpdateAnswer(c.Request.Context(), id, userID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ans)
}

func (h *AnswerHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteAnswer(id, userID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "answer.deleted"})
}

func (h *AnswerHandler) ListByQuestion(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	answers, err := h.svc.AnswersByQuestion(questionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

// MarkChosen lets the question's asker accept this answer.
func (h *AnswerHandler) MarkChosen(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.MarkChosen(id, userID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "answer.marked-chosen"})
}

func (h *AnswerHandler) Vote(c *gin.Context) {
	handleVote(c, h.svc, h.log, models.ContentAnswer)
}

func (h *AnswerHandler) VoteStatus(c *gin.Context) {
	handleVoteStatus(c, h.svc, h.log, models.ContentAnswer)
}

func (h *AnswerHandler) EditHistory(c *gin.Context) {
	handleEditHistory(c, h.svc, h.log, models.ContentAnswer)
}
