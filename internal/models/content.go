package models

import "time"

// ContentType discriminates the three votable content kinds wherever a
// single table references any of them (votes, edit snapshots, images,
// reports).
type ContentType string

const (
	ContentQuestion ContentType = "QUESTION"
	ContentAnswer   ContentType = "ANSWER"
	ContentComment  ContentType = "COMMENT"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentQuestion, ContentAnswer, ContentComment:
		return true
	}
	return false
}

// ContentImage is an image attached to the live version of a content item.
type ContentImage struct {
	ID          int         `gorm:"primaryKey" json:"id"`
	ContentType ContentType `gorm:"type:varchar(16);index:idx_content_images_content" json:"content_type"`
	ContentID   int         `gorm:"index:idx_content_images_content" json:"content_id"`
	URL         string      `gorm:"not null" json:"url"`
	CreatedAt   time.Time   `json:"created_at"`
}

// EditSnapshot captures the pre-edit body of a content item. EditedAt is
// the UpdatedAt the live record carried before the edit; the snapshot
// chain is navigated by that timestamp.
type EditSnapshot struct {
	ID          int         `gorm:"primaryKey" json:"id"`
	ContentType ContentType `gorm:"type:varchar(16);index:idx_edit_snapshots_content" json:"content_type"`
	ContentID   int         `gorm:"index:idx_edit_snapshots_content" json:"content_id"`

	PreviousTitle   string    `json:"previous_title,omitempty"`
	PreviousContent string    `json:"previous_content"`
	EditedAt        time.Time `gorm:"index" json:"edited_at"`

	Images []SnapshotImage `gorm:"foreignKey:SnapshotID" json:"images"`

	CreatedAt time.Time `json:"created_at"`
}

type SnapshotImage struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	SnapshotID int    `gorm:"index;not null" json:"snapshot_id"`
	URL        string `gorm:"not null" json:"url"`
}
