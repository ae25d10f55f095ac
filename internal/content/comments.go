package content

import (
	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

// CreateComment posts a comment under an answer, notifies the answer's
// author with the comment body as context, and records COMMENT_CREATE.
func (s *Service) CreateComment(userID, answerID int, content string) (*models.Comment, error) {
	var ans models.Answer
	if err := s.db.First(&ans, answerID).Error; err != nil {
		return nil, apperror.NotFound("answer.not-found")
	}

	c := &models.Comment{
		Content:  s.sanitizer.Sanitize(content),
		AnswerID: answerID,
		UserID:   userID,
	}
	if err := s.db.Create(c).Error; err != nil {
		return nil, err
	}

	qid := ans.QuestionID
	s.notify(ans.UserID, userID, models.NotifyComment, c.Content, &qid)
	s.recordHistory(userID, models.HistoryCommentCreate, c.Content, &qid)
	return c, nil
}

// UpdateComment snapshots the pre-edit content and applies the new body.
// Only the author may edit.
func (s *Service) UpdateComment(id, userID int, content string) (*models.Comment, error) {
	var existing models.Comment
	if err := s.db.First(&existing, id).Error; err != nil {
		return nil, apperror.NotFound("comment.not-found")
	}
	if existing.UserID != userID {
		return nil, apperror.Forbidden("comment.forbidden")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.snapshot(tx, models.ContentComment, existing.ID, "", existing.Content, existing.UpdatedAt); err != nil {
			return err
		}
		updates := map[string]interface{}{
			"content":   s.sanitizer.Sanitize(content),
			"is_edited": true,
		}
		return tx.Model(&existing).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if item, lerr := s.loadInfo(s.db, models.ContentComment, id); lerr == nil {
		s.recordHistory(userID, models.HistoryCommentEdit, item.Title, item.QuestionID)
	}

	var updated models.Comment
	if err := s.db.Preload("User").First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteComment removes a comment with its votes and snapshots.
func (s *Service) DeleteComment(id, userID int) error {
	var existing models.Comment
	if err := s.db.First(&existing, id).Error; err != nil {
		return apperror.NotFound("comment.not-found")
	}
	if existing.UserID != userID {
		return apperror.Forbidden("comment.forbidden")
	}

	item, lerr := s.loadInfo(s.db, models.ContentComment, id)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteContentRows(tx, models.ContentComment, id); err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if err != nil {
		return err
	}

	var qid *int
	if lerr == nil {
		qid = item.QuestionID
	}
	s.recordHistory(userID, models.HistoryCommentDelete, existing.Content, qid)
	return nil
}

// CommentsByAnswer lists an answer's comments oldest-first.
func (s *Service) CommentsByAnswer(answerID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("answer_id = ?", answerID).
		Preload("User").
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}
