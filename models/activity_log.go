package models

import "time"

type ActivityLog struct {
	ActivityID uint      `gorm:"primaryKey;column:activity_id" json:"activity_id"`
	VenueID    *string   `gorm:"column:venue_id" json:"venue_id,omitempty"`
	UserID     string    `gorm:"column:user_id" json:"user_id"`
	Action     string    `gorm:"column:action" json:"action"` // submission|review|withdrawal|...
	TargetType string    `gorm:"column:target_type" json:"target_type"`
	TargetID   string    `gorm:"column:target_id" json:"target_id"`
	Metadata   *string   `gorm:"column:metadata" json:"metadata,omitempty"` // JSON blob
	CreateAt   time.Time `gorm:"column:create_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ActivityLog) TableName() string { return "activity_log" }
