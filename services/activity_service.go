package services

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/gsq7474741/Rubbish/models"
)

// LogActivity appends an entry to the venue activity feed. Best-effort: a
// failed write is logged and ignored, the feed has no delivery guarantee.
func LogActivity(db *gorm.DB, venueID *string, userID, action, targetType, targetID string, metadata map[string]interface{}) {
	entry := models.ActivityLog{
		VenueID:    venueID,
		UserID:     userID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		CreateAt:   time.Now(),
	}
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			s := string(raw)
			entry.Metadata = &s
		}
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[activity] failed to log %s on %s %s: %v", action, targetType, targetID, err)
	}
}
