package models

import "time"

type Comment struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	Content string `gorm:"not null" json:"content"`

	AnswerID int  `gorm:"index" json:"answer_id"`
	UserID   int  `gorm:"index" json:"user_id"`
	User     User `gorm:"foreignKey:UserID" json:"user"`

	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`

	IsHidden bool `gorm:"default:false" json:"is_hidden"`
	IsEdited bool `gorm:"default:false" json:"is_edited"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
