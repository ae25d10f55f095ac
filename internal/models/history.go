package models

import "time"

// HistoryType is the closed set of actions recorded in a user's personal
// activity log.
type HistoryType string

const (
	HistoryQuestionCreate   HistoryType = "QUESTION_CREATE"
	HistoryAnswerCreate     HistoryType = "ANSWER_CREATE"
	HistoryCommentCreate    HistoryType = "COMMENT_CREATE"
	HistoryQuestionEdit     HistoryType = "QUESTION_EDIT"
	HistoryAnswerEdit       HistoryType = "ANSWER_EDIT"
	HistoryCommentEdit      HistoryType = "COMMENT_EDIT"
	HistoryQuestionDelete   HistoryType = "QUESTION_DELETE"
	HistoryAnswerDelete     HistoryType = "ANSWER_DELETE"
	HistoryCommentDelete    HistoryType = "COMMENT_DELETE"
	HistoryQuestionVote     HistoryType = "QUESTION_VOTE"
	HistoryAnswerVote       HistoryType = "ANSWER_VOTE"
	HistoryCommentVote      HistoryType = "COMMENT_VOTE"
	HistoryQuestionDownvote HistoryType = "QUESTION_DOWNVOTE"
	HistoryAnswerDownvote   HistoryType = "ANSWER_DOWNVOTE"
	HistoryCommentDownvote  HistoryType = "COMMENT_DOWNVOTE"
	HistoryAnswerChosen     HistoryType = "ANSWER_CHOSEN"
	HistoryReportCreate     HistoryType = "REPORT_CREATE"
)

// HistoryTypes lists every valid HistoryType, in a stable order.
var HistoryTypes = []HistoryType{
	HistoryQuestionCreate, HistoryAnswerCreate, HistoryCommentCreate,
	HistoryQuestionEdit, HistoryAnswerEdit, HistoryCommentEdit,
	HistoryQuestionDelete, HistoryAnswerDelete, HistoryCommentDelete,
	HistoryQuestionVote, HistoryAnswerVote, HistoryCommentVote,
	HistoryQuestionDownvote, HistoryAnswerDownvote, HistoryCommentDownvote,
	HistoryAnswerChosen, HistoryReportCreate,
}

func (t HistoryType) Valid() bool {
	for _, known := range HistoryTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HistoryEntry is attributed to the acting user, not the content owner:
// it is the actor's own activity log, unlike Notification which is the
// recipient's inbox.
type HistoryEntry struct {
	ID           int         `gorm:"primaryKey" json:"id"`
	UserID       int         `gorm:"index;not null" json:"user_id"`
	User         User        `gorm:"foreignKey:UserID" json:"user"`
	Type         HistoryType `gorm:"type:varchar(32);not null" json:"type"`
	ContentTitle string      `json:"content_title"`
	QuestionID   *int        `json:"question_id,omitempty"`
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`
}
