package content

import (
	"context"

	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/models"
	"github.com/mhndckngyn/askdev-api/internal/upload"
)

type AnswerInput struct {
	Content       string
	CurrentImages []string
	Files         []upload.File
}

// CreateAnswer posts an answer under a question, notifies the asker and
// records ANSWER_CREATE.
func (s *Service) CreateAnswer(ctx context.Context, userID, questionID int, in AnswerInput) (*models.Answer, error) {
	var q models.Question
	if err := s.db.First(&q, questionID).Error; err != nil {
		return nil, apperror.NotFound("question.not-found")
	}

	urls, err := s.uploader.Upload(ctx, in.Files)
	if err != nil {
		return nil, apperror.Internal("upload.failed")
	}

	ans := &models.Answer{
		Content:    s.sanitizer.Sanitize(in.Content),
		QuestionID: questionID,
		UserID:     userID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ans).Error; err != nil {
			return err
		}
		return createImages(tx, models.ContentAnswer, ans.ID, urls)
	})
	if err != nil {
		return nil, err
	}

	qid := questionID
	s.notify(q.UserID, userID, models.NotifyAnswer, q.Title, &qid)
	s.recordHistory(userID, models.HistoryAnswerCreate, q.Title, &qid)
	return ans, nil
}

// UpdateAnswer snapshots the pre-edit content, applies the new body and
// image set, and records ANSWER_EDIT. Only the author may edit.
func (s *Service) UpdateAnswer(ctx context.Context, id, userID int, in AnswerInput) (*models.Answer, error) {
	var existing models.Answer
	if err := s.db.First(&existing, id).Error; err != nil {
		return nil, apperror.NotFound("answer.not-found")
	}
	if existing.UserID != userID {
		return nil, apperror.Forbidden("answer.forbidden")
	}

	urls, err := s.uploader.Upload(ctx, in.Files)
	if err != nil {
		return nil, apperror.Internal("upload.failed")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.snapshot(tx, models.ContentAnswer, existing.ID, "", existing.Content, existing.UpdatedAt); err != nil {
			return err
		}
		updates := map[string]interface{}{
			"content":   s.sanitizer.Sanitize(in.Content),
			"is_edited": true,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		return reconcileImages(tx, models.ContentAnswer, existing.ID, in.CurrentImages, urls)
	})
	if err != nil {
		return nil, err
	}

	var q models.Question
	if err := s.db.First(&q, existing.QuestionID).Error; err == nil {
		qid := q.ID
		s.recordHistory(userID, models.HistoryAnswerEdit, q.Title, &qid)
	}

	var updated models.Answer
	if err := s.db.Preload("User").First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAnswer removes an answer, its comments, and all votes, images
// and snapshots involved. Records ANSWER_DELETE against the question
// title.
func (s *Service) DeleteAnswer(id, userID int) error {
	var existing models.Answer
	if err := s.db.First(&existing, id).Error; err != nil {
		return apperror.NotFound("answer.not-found")
	}
	if existing.UserID != userID {
		return apperror.Forbidden("answer.forbidden")
	}

	var q models.Question
	_ = s.db.First(&q, existing.QuestionID).Error

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []int
		if err := tx.Model(&models.Comment{}).Where("answer_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		for _, cid := range commentIDs {
			if err := deleteContentRows(tx, models.ContentComment, cid); err != nil {
				return err
			}
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := deleteContentRows(tx, models.ContentAnswer, id); err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if err != nil {
		return err
	}

	if q.ID != 0 {
		qid := q.ID
		s.recordHistory(userID, models.HistoryAnswerDelete, q.Title, &qid)
	}
	return nil
}

// AnswersByQuestion lists an answer thread oldest-first with authors and
// comments preloaded.
func (s *Service) AnswersByQuestion(questionID int) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Where("question_id = ?", questionID).
		Preload("User").
		Order("is_chosen desc, created_at asc").
		Find(&answers).Error
	return answers, err
}
