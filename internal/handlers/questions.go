package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mhndckngyn/askdev-api/internal/content"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

type QuestionHandler struct {
	svc *content.Service
	log *slog.Logger
}

func NewQuestionHandler(svc *content.Service, log *slog.Logger) *QuestionHandler {
	return &QuestionHandler{svc: svc, log: log}
}

// questionInput builds the service input from a multipart form: title,
// content, tags (existing ids), newTags (names to create), currentImages
// (update only) and images (file uploads).
func questionInput(c *gin.Context) (content.QuestionInput, func(), bool) {
	in := content.QuestionInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
		NewTags: c.PostFormArray("newTags"),
	}
	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question.title-required"})
		return in, nil, false
	}

	for _, raw := range c.PostFormArray("tags") {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question.invalid-tag-id"})
			return in, nil, false
		}
		in.TagIDs = append(in.TagIDs, id)
	}
	in.CurrentImages = c.PostFormArray("currentImages")

	files, opened, err := formFiles(c, "images")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload.invalid-file"})
		return in, nil, false
	}
	in.Files = files
	return in, func() { closeAll(opened) }, true
}

func (h *QuestionHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	in, cleanup, ok := questionInput(c)
	if !ok {
		return
	}
	defer cleanup()

	q, err := h.svc.CreateQuestion(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *QuestionHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, cleanup, ok := questionInput(c)
	if !ok {
		return
	}
	defer cleanup()

	q, err := h.svc.UpdateQuestion(c.Request.Context(), id, userID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteQuestion(id, userID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question.deleted"})
}

func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	q, err := h.svc.GetQuestion(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuestionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	questions, total, err := h.svc.ListQuestions(c.Query("keyword"), page, pageSize)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions, "total": total})
}

func (h *QuestionHandler) Vote(c *gin.Context) {
	handleVote(c, h.svc, h.log, models.ContentQuestion)
}

func (h *QuestionHandler) VoteStatus(c *gin.Context) {
	handleVoteStatus(c, h.svc, h.log, models.ContentQuestion)
}

func (h *QuestionHandler) EditHistory(c *gin.Context) {
	handleEditHistory(c, h.svc, h.log, models.ContentQuestion)
}
