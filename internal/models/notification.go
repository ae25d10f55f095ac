package models

import "time"

type NotificationType string

const (
	NotifyAnswer       NotificationType = "ANSWER"
	NotifyComment      NotificationType = "COMMENT"
	NotifyQuestionVote NotificationType = "QUESTION_VOTE"
	NotifyAnswerVote   NotificationType = "ANSWER_VOTE"
	NotifyCommentVote  NotificationType = "COMMENT_VOTE"
)

// Notification is a recipient's inbox entry. ContentTitle is a denormalized
// snapshot, not a live reference, so it survives later edits and deletes of
// the source content.
type Notification struct {
	ID      int              `gorm:"primaryKey" json:"id"`
	UserID  int              `gorm:"index;not null" json:"user_id"` // recipient
	ActorID int              `gorm:"index" json:"actor_id"`
	Actor   User             `gorm:"foreignKey:ActorID" json:"actor"`
	Type    NotificationType `gorm:"type:varchar(32);not null" json:"type"`

	ContentTitle string `json:"content_title"`
	QuestionID   *int   `json:"question_id,omitempty"`

	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
