package models

import "time"

type Venue struct {
	VenueID     string     `gorm:"primaryKey;column:venue_id" json:"venue_id"`
	Slug        string     `gorm:"column:slug;unique" json:"slug"`
	Name        string     `gorm:"column:name" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	ReviewMode  string     `gorm:"column:review_mode" json:"review_mode"` // open|blind|instant
	CreatedBy   string     `gorm:"column:created_by" json:"created_by"`
	PaperCount  int        `gorm:"column:paper_count" json:"paper_count"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Venue) TableName() string {
	return "venues"
}

// InviteCode gates instant-mode submissions.
type InviteCode struct {
	Code      string     `gorm:"primaryKey;column:code" json:"code"`
	CreatorID string     `gorm:"column:creator_id" json:"creator_id"`
	UsedBy    *string    `gorm:"column:used_by" json:"used_by,omitempty"`
	UsedAt    *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"created_at"`
}

func (InviteCode) TableName() string {
	return "invite_codes"
}
