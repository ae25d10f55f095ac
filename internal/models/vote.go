package models

import "time"

// Vote tracks a single user's vote on a single content item. The composite
// unique index is what makes concurrent double-submission race-free: the
// application never relies on a read-then-insert alone.
type Vote struct {
	ID          int         `gorm:"primaryKey" json:"id"`
	UserID      int         `gorm:"not null;uniqueIndex:idx_votes_user_content" json:"user_id"`
	ContentType ContentType `gorm:"type:varchar(16);not null;uniqueIndex:idx_votes_user_content" json:"content_type"`
	ContentID   int         `gorm:"not null;uniqueIndex:idx_votes_user_content" json:"content_id"`
	Type        int         `gorm:"not null" json:"type"` // +1 or -1
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

const (
	VoteUp   = 1
	VoteDown = -1
)
