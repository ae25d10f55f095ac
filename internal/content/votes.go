package content

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

type VoteAction string

const (
	VoteCreated VoteAction = "created"
	VoteChanged VoteAction = "changed"
	VoteRemoved VoteAction = "removed"
)

type VoteResult struct {
	Action VoteAction `json:"action"`
}

// Vote applies one user's vote to one content item.
//
// No prior vote creates one; repeating the same direction removes it
// (toggle-off); the opposite direction flips it. The cached upvote and
// downvote counters move by relative deltas inside the same transaction
// as the vote row, so they stay equal to the vote counts as long as every
// mutation goes through here. Notification and history fire on created
// and changed only — un-voting stays quiet.
func (s *Service) Vote(userID int, kind models.ContentType, contentID, direction int) (VoteResult, error) {
	if direction != models.VoteUp && direction != models.VoteDown {
		return VoteResult{}, apperror.BadRequest("vote.invalid-type")
	}

	item, err := s.loadInfo(s.db, kind, contentID)
	if err != nil {
		return VoteResult{}, err
	}

	var action VoteAction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		findErr := tx.Where("user_id = ? AND content_type = ? AND content_id = ?", userID, kind, contentID).
			First(&existing).Error

		switch {
		case findErr == nil && existing.Type == direction:
			// same button again: toggle off
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			action = VoteRemoved
			return s.applyCounterDelta(tx, kind, contentID,
				-oneIf(direction == models.VoteUp),
				-oneIf(direction == models.VoteDown))

		case findErr == nil:
			// opposite button: flip the vote, move both counters
			if err := tx.Model(&existing).Update("type", direction).Error; err != nil {
				return err
			}
			action = VoteChanged
			up, down := -1, 1
			if direction == models.VoteUp {
				up, down = 1, -1
			}
			return s.applyCounterDelta(tx, kind, contentID, up, down)

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			vote := models.Vote{
				UserID:      userID,
				ContentType: kind,
				ContentID:   contentID,
				Type:        direction,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			action = VoteCreated
			return s.applyCounterDelta(tx, kind, contentID,
				oneIf(direction == models.VoteUp),
				oneIf(direction == models.VoteDown))

		default:
			return findErr
		}
	})
	if err != nil {
		return VoteResult{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordVote(string(action))
	}
	if action == VoteCreated || action == VoteChanged {
		s.notify(item.OwnerID, userID, voteNotifyType(kind), item.Title, item.QuestionID)
		s.recordHistory(userID, voteHistoryType(kind, direction), item.Title, item.QuestionID)
	}

	return VoteResult{Action: action}, nil
}

// VoteStatus reports how userID currently stands on a content item.
func (s *Service) VoteStatus(userID int, kind models.ContentType, contentID int) (string, error) {
	var vote models.Vote
	err := s.db.Where("user_id = ? AND content_type = ? AND content_id = ?", userID, kind, contentID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "none", nil
	}
	if err != nil {
		return "", err
	}
	if vote.Type == models.VoteUp {
		return "like", nil
	}
	return "dislike", nil
}

// applyCounterDelta moves the cached counters by relative amounts. The
// deltas are applied in SQL, never read-modify-write in Go, so concurrent
// votes from different users cannot lose updates.
func (s *Service) applyCounterDelta(tx *gorm.DB, kind models.ContentType, id, up, down int) error {
	updates := map[string]interface{}{}
	if up != 0 {
		updates["upvotes"] = gorm.Expr("upvotes + ?", up)
	}
	if down != 0 {
		updates["downvotes"] = gorm.Expr("downvotes + ?", down)
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(modelFor(kind)).Where("id = ?", id).Updates(updates).Error
}

func oneIf(cond bool) int {
	if cond {
		return 1
	}
	return 0
}

func voteNotifyType(kind models.ContentType) models.NotificationType {
	switch kind {
	case models.ContentQuestion:
		return models.NotifyQuestionVote
	case models.ContentAnswer:
		return models.NotifyAnswerVote
	default:
		return models.NotifyCommentVote
	}
}

func voteHistoryType(kind models.ContentType, direction int) models.HistoryType {
	if direction == models.VoteUp {
		switch kind {
		case models.ContentQuestion:
			return models.HistoryQuestionVote
		case models.ContentAnswer:
			return models.HistoryAnswerVote
		default:
			return models.HistoryCommentVote
		}
	}
	switch kind {
	case models.ContentQuestion:
		return models.HistoryQuestionDownvote
	case models.ContentAnswer:
		return models.HistoryAnswerDownvote
	default:
		return models.HistoryCommentDownvote
	}
}
