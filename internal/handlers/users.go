package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/models"
)

type UserHandler struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewUserHandler(db *gorm.DB, log *slog.Logger) *UserHandler {
	return &UserHandler{db: db, log: log}
}

// GetUserProfile returns a user's public profile with their visible
// questions and contribution counts.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user.not-found"})
		return
	}

	var questions []models.Question
	h.db.Where("user_id = ? AND is_hidden = ?", userID, false).
		Preload("Tags").
		Order("created_at desc").
		Limit(20).
		Find(&questions)

	var questionCount, answerCount, chosenCount int64
	h.db.Model(&models.Question{}).Where("user_id = ?", userID).Count(&questionCount)
	h.db.Model(&models.Answer{}).Where("user_id = ?", userID).Count(&answerCount)
	h.db.Model(&models.Answer{}).Where("user_id = ? AND is_chosen = ?", userID, true).Count(&chosenCount)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"bio":      user.Bio,
			"avatar":   user.Avatar,
		},
		"questions":      questions,
		"question_count": questionCount,
		"answer_count":   answerCount,
		"chosen_count":   chosenCount,
	})
}
