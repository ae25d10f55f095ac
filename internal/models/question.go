package models

import "time"

type Question struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Content string `json:"content"`

	UserID int  `gorm:"index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`

	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`

	IsSolved bool `gorm:"default:false" json:"is_solved"`
	IsHidden bool `gorm:"default:false" json:"is_hidden"`
	IsEdited bool `gorm:"default:false" json:"is_edited"`

	Tags    []Tag    `gorm:"many2many:question_tags" json:"tags"`
	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
