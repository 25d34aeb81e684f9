package controllers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gsq7474741/Rubbish/config"
	"github.com/gsq7474741/Rubbish/models"
)

// No 0/1/I/O, codes get read aloud.
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const maxUnusedInviteCodes = 5

func randomCodeSegment(length int) string {
	buf := make([]byte, length)
	_, _ = rand.Read(buf)
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(out)
}

// GetInviteCodes lists the current user's invite codes.
func GetInviteCodes(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var codes []models.InviteCode
	if err := config.DB.Where("creator_id = ?", userID).
		Order("create_at DESC").
		Find(&codes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invite codes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": codes})
}

// CreateInviteCode generates a new invite code for instant-mode submissions.
// Each user can hold at most 5 unused codes at a time.
func CreateInviteCode(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var unused int64
	if err := config.DB.Model(&models.InviteCode{}).
		Where("creator_id = ? AND used_by IS NULL", userID).
		Count(&unused).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check invite codes"})
		return
	}
	if unused >= maxUnusedInviteCodes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already have 5 unused invite codes. Wait until some are used."})
		return
	}

	var req struct {
		ExpiresInDays int `json:"expires_in_days"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.ExpiresInDays <= 0 {
		req.ExpiresInDays = 30
	}

	expiresAt := time.Now().AddDate(0, 0, req.ExpiresInDays)
	invite := models.InviteCode{
		Code:      fmt.Sprintf("RR-%s-%s", randomCodeSegment(4), randomCodeSegment(4)),
		CreatorID: userID,
		ExpiresAt: &expiresAt,
		CreateAt:  time.Now(),
	}
	if err := config.DB.Create(&invite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invite code"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": invite})
}

// VerifyInviteCode validates and consumes an invite code.
func VerifyInviteCode(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invite code is required"})
		return
	}

	if err := consumeInviteCode(config.DB, req.Code, userID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invite code applied successfully"})
}

// consumeInviteCode marks a code as used by userID. The used_by IS NULL guard
// in the final update keeps a code single-use under concurrent redemption.
func consumeInviteCode(db *gorm.DB, code, userID string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return errors.New("Invite code is required")
	}

	var invite models.InviteCode
	if err := db.Where("code = ?", code).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("Invalid invite code: %w", err)
		}
		return err
	}

	if invite.UsedBy != nil {
		return errors.New("This invite code has already been used")
	}
	if invite.ExpiresAt != nil && invite.ExpiresAt.Before(time.Now()) {
		return errors.New("This invite code has expired")
	}

	now := time.Now()
	res := db.Model(&models.InviteCode{}).
		Where("code = ? AND used_by IS NULL", code).
		Updates(map[string]interface{}{
			"used_by": userID,
			"used_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("This invite code has already been used")
	}
	return nil
}
