package content

import (
	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

// MarkChosen marks an answer as the accepted solution. Only the question's
// asker may choose; any previously chosen answer on the question is unset
// in the same transaction so at most one stays chosen. Setting the flag
// also marks the question solved.
func (s *Service) MarkChosen(answerID, actorID int) error {
	var ans models.Answer
	if err := s.db.First(&ans, answerID).Error; err != nil {
		return apperror.NotFound("answer.not-found")
	}

	var q models.Question
	if err := s.db.First(&q, ans.QuestionID).Error; err != nil {
		return apperror.NotFound("question.not-found")
	}

	if q.UserID != actorID {
		return apperror.Forbidden("answer.mark-chosen-forbidden")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Answer{}).
			Where("question_id = ? AND is_chosen = ? AND id <> ?", q.ID, true, ans.ID).
			Update("is_chosen", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&ans).Update("is_chosen", true).Error; err != nil {
			return err
		}
		return tx.Model(&q).Update("is_solved", true).Error
	})
	if err != nil {
		return apperror.Internal("answer.mark-chosen-failed")
	}

	qid := q.ID
	s.recordHistory(actorID, models.HistoryAnswerChosen, q.Title, &qid)
	return nil
}
