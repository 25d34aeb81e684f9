package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/gsq7474741/Rubbish/config"
	"github.com/gsq7474741/Rubbish/models"
)

// Only these notification types trigger an email; others are site-only.
var emailWorthyTypes = map[string]bool{
	"decision":   true,
	"new_review": true,
}

// Notify persists a notification and sends an email for important types.
// Best-effort: failures are logged and never surfaced to the caller, so a
// broken mailer cannot fail a review submission.
func Notify(db *gorm.DB, userID, notifType, title, body string, link *string) {
	notification := models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Body:     body,
		Link:     link,
		CreateAt: time.Now(),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("[notify] failed to create notification for user %s: %v", userID, err)
		return
	}

	if !emailWorthyTypes[notifType] {
		return
	}

	var user models.User
	if err := db.Select("email").Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		log.Printf("[notify] failed to look up email for user %s: %v", userID, err)
		return
	}
	if user.Email == "" {
		return
	}

	html := fmt.Sprintf("<p>%s</p>", body)
	if link != nil && *link != "" {
		html += fmt.Sprintf(`<p><a href="%s">View on RubbishReview</a></p>`, *link)
	}
	if err := config.SendMail([]string{user.Email}, title, html); err != nil {
		log.Printf("[notify] failed to send email to user %s: %v", userID, err)
	}
}
