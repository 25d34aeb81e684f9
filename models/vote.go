package models

import "time"

// Vote target types.
const (
	VoteTargetPaper   = "paper"
	VoteTargetComment = "comment"
)

type Vote struct {
	VoteID     uint      `gorm:"primaryKey;column:vote_id" json:"vote_id"`
	UserID     string    `gorm:"column:user_id" json:"user_id"`
	TargetType string    `gorm:"column:target_type" json:"target_type"`
	TargetID   string    `gorm:"column:target_id" json:"target_id"`
	Value      int       `gorm:"column:value" json:"value"` // +1 or -1
	CreateAt   time.Time `gorm:"column:create_at" json:"created_at"`
}

func (Vote) TableName() string {
	return "votes"
}
