package models

import "time"

// Paper lifecycle statuses.
const (
	StatusSubmitted       = "submitted"
	StatusUnderReview     = "under_review"
	StatusPublished       = "published"
	StatusRejectedTooGood = "rejected_too_good"
	StatusWithdrawn       = "withdrawn"
)

// Editorial decisions.
const (
	DecisionCertifiedRubbish = "certified_rubbish"
	DecisionRecyclable       = "recyclable"
	DecisionTooGood          = "too_good"
)

// Review modes, copied from the venue at submission time.
const (
	ReviewModeOpen    = "open"
	ReviewModeBlind   = "blind"
	ReviewModeInstant = "instant"
)

// DecisionLabels are user-visible and appear verbatim in notification history.
var DecisionLabels = map[string]string{
	DecisionCertifiedRubbish: "🗑️ Certified Rubbish",
	DecisionRecyclable:       "♻️ Recyclable",
	DecisionTooGood:          "❌ Too Good, Rejected",
}

type Paper struct {
	PaperID     string  `gorm:"primaryKey;column:paper_id" json:"paper_id"`
	PaperNumber int     `gorm:"column:paper_number" json:"paper_number"`
	VenueID     string  `gorm:"column:venue_id" json:"venue_id"`
	AuthorID    string  `gorm:"column:author_id" json:"author_id"`
	Title       string  `gorm:"column:title" json:"title"`
	Abstract    string  `gorm:"column:abstract" json:"abstract"`
	Keywords    *string `gorm:"column:keywords" json:"keywords,omitempty"`

	ContentType     string  `gorm:"column:content_type" json:"content_type"` // latex|pdf|markdown|image|word
	ContentMarkdown *string `gorm:"column:content_markdown" json:"content_markdown,omitempty"`
	PDFURL          *string `gorm:"column:pdf_url" json:"pdf_url,omitempty"`

	Status     string     `gorm:"column:status" json:"status"`
	ReviewMode string     `gorm:"column:review_mode" json:"review_mode"`
	Decision   *string    `gorm:"column:decision" json:"decision,omitempty"`
	DecisionAt *time.Time `gorm:"column:decision_at" json:"decision_at,omitempty"`

	ReviewCount     int     `gorm:"column:review_count" json:"review_count"`
	AvgRubbishScore float64 `gorm:"column:avg_rubbish_score" json:"avg_rubbish_score"`
	CommentCount    int     `gorm:"column:comment_count" json:"comment_count"`
	ViewCount       int     `gorm:"column:view_count" json:"view_count"`
	VoteScore       int     `gorm:"column:vote_score" json:"vote_score"`

	WithdrawnAt      *time.Time `gorm:"column:withdrawn_at" json:"withdrawn_at,omitempty"`
	WithdrawalReason *string    `gorm:"column:withdrawal_reason" json:"withdrawal_reason,omitempty"`

	CreateAt time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`

	Author *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Venue  *Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
}

func (Paper) TableName() string {
	return "papers"
}
