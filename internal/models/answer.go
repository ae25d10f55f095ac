package models

import "time"

type Answer struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	Content string `gorm:"not null" json:"content"`

	QuestionID int  `gorm:"index" json:"question_id"`
	UserID     int  `gorm:"index" json:"user_id"`
	User       User `gorm:"foreignKey:UserID" json:"user"`

	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`

	IsChosen bool `gorm:"default:false" json:"is_chosen"`
	IsHidden bool `gorm:"default:false" json:"is_hidden"`
	IsEdited bool `gorm:"default:false" json:"is_edited"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
