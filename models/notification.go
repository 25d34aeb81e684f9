package models

import "time"

type Notification struct {
	NotificationID uint      `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID         string    `gorm:"column:user_id" json:"user_id"`
	Type           string    `gorm:"column:type" json:"type"` // decision|new_review|submission|...
	Title          string    `gorm:"column:title" json:"title"`
	Body           string    `gorm:"column:body" json:"body"`
	Link           *string   `gorm:"column:link" json:"link,omitempty"`
	IsRead         bool      `gorm:"column:is_read" json:"is_read"`
	CreateAt       time.Time `gorm:"column:create_at" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
