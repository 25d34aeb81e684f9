package models

import "time"

type Review struct {
	ReviewID   string `gorm:"primaryKey;column:review_id" json:"review_id"`
	PaperID    string `gorm:"column:paper_id" json:"paper_id"`
	ReviewerID string `gorm:"column:reviewer_id" json:"reviewer_id"`

	RubbishScore       int `gorm:"column:rubbish_score" json:"rubbish_score"`
	UselessnessScore   int `gorm:"column:uselessness_score" json:"uselessness_score"`
	EntertainmentScore int `gorm:"column:entertainment_score" json:"entertainment_score"`

	Summary        string  `gorm:"column:summary" json:"summary"`
	Strengths      *string `gorm:"column:strengths" json:"strengths,omitempty"`
	Weaknesses     *string `gorm:"column:weaknesses" json:"weaknesses,omitempty"`
	Recommendation string  `gorm:"column:recommendation" json:"recommendation"` // certified_rubbish|recyclable|too_good
	IsAnonymous    bool    `gorm:"column:is_anonymous" json:"is_anonymous"`

	CreateAt time.Time `gorm:"column:create_at" json:"created_at"`

	Reviewer  *User      `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Rebuttals []Rebuttal `gorm:"foreignKey:ReviewID" json:"rebuttals,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// Rebuttal is an append-only author response attached to a review.
// Rebuttals never feed back into decision logic.
type Rebuttal struct {
	RebuttalID string    `gorm:"primaryKey;column:rebuttal_id" json:"rebuttal_id"`
	ReviewID   string    `gorm:"column:review_id" json:"review_id"`
	AuthorID   string    `gorm:"column:author_id" json:"author_id"`
	Content    string    `gorm:"column:content" json:"content"`
	CreateAt   time.Time `gorm:"column:create_at" json:"created_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Rebuttal) TableName() string {
	return "rebuttals"
}
