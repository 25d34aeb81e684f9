package models

import "time"

type Comment struct {
	CommentID string    `gorm:"primaryKey;column:comment_id" json:"comment_id"`
	PaperID   string    `gorm:"column:paper_id" json:"paper_id"`
	UserID    string    `gorm:"column:user_id" json:"user_id"`
	ParentID  *string   `gorm:"column:parent_id" json:"parent_id,omitempty"`
	Content   string    `gorm:"column:content" json:"content"`
	VoteScore int       `gorm:"column:vote_score" json:"vote_score"`
	CreateAt  time.Time `gorm:"column:create_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
