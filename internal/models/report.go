package models

import "time"

type Report struct {
	ID           int         `gorm:"primaryKey" json:"id"`
	ReportedByID int         `gorm:"index;not null" json:"reported_by_id"`
	ReportedBy   User        `gorm:"foreignKey:ReportedByID" json:"reported_by"`
	ContentType  ContentType `gorm:"type:varchar(16);not null" json:"content_type"`
	ContentID    int         `gorm:"not null" json:"content_id"`
	Reason       string      `gorm:"not null" json:"reason"`
	CreatedAt    time.Time   `json:"created_at"`
}

type CreateReportRequest struct {
	ContentType ContentType `json:"content_type" binding:"required"`
	ContentID   int         `json:"content_id" binding:"required"`
	Reason      string      `json:"reason" binding:"required"`
}
