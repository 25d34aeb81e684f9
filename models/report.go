package models

import "time"

// Report statuses.
const (
	ReportPending   = "pending"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"
)

type Report struct {
	ReportID    string     `gorm:"primaryKey;column:report_id" json:"report_id"`
	ReporterID  string     `gorm:"column:reporter_id" json:"reporter_id"`
	TargetType  string     `gorm:"column:target_type" json:"target_type"` // paper|comment|review|profile
	TargetID    string     `gorm:"column:target_id" json:"target_id"`
	Reason      string     `gorm:"column:reason" json:"reason"`
	Description *string    `gorm:"column:description" json:"description,omitempty"`
	Status      string     `gorm:"column:status" json:"status"`
	ResolvedBy  *string    `gorm:"column:resolved_by" json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"created_at"`

	Reporter *User `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}
