package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gsq7474741/Rubbish/config"
	"github.com/gsq7474741/Rubbish/models"
)

// CastVote creates, flips or removes a ±1 vote on a paper or comment. The
// target's vote_score counter is adjusted in the same transaction.
func CastVote(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		TargetType string `json:"target_type"`
		TargetID   string `json:"target_id"`
		Value      int    `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.TargetID == "" || (req.Value != 1 && req.Value != -1) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parameters"})
		return
	}
	if req.TargetType != models.VoteTargetPaper && req.TargetType != models.VoteTargetComment {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target_type"})
		return
	}

	table := "papers"
	idColumn := "paper_id"
	if req.TargetType == models.VoteTargetComment {
		table = "comments"
		idColumn = "comment_id"
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var existing models.Vote
	err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, req.TargetType, req.TargetID).
		First(&existing).Error

	switch {
	case err == nil && existing.Value == req.Value:
		// Toggle off.
		if err := tx.Delete(&existing).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove vote"})
			return
		}
		if err := tx.Exec("UPDATE "+table+" SET vote_score = vote_score - ? WHERE "+idColumn+" = ?", existing.Value, req.TargetID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update score"})
			return
		}
		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove vote"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"action": "removed", "value": 0})
		return

	case err == nil:
		// Flip direction: the counter moves two steps.
		if err := tx.Model(&models.Vote{}).
			Where("vote_id = ?", existing.VoteID).
			Update("value", req.Value).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change vote"})
			return
		}
		if err := tx.Exec("UPDATE "+table+" SET vote_score = vote_score + ? WHERE "+idColumn+" = ?", 2*req.Value, req.TargetID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update score"})
			return
		}
		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change vote"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"action": "changed", "value": req.Value})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.Vote{
			UserID:     userID,
			TargetType: req.TargetType,
			TargetID:   req.TargetID,
			Value:      req.Value,
			CreateAt:   time.Now(),
		}
		if err := tx.Create(&vote).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vote"})
			return
		}
		if err := tx.Exec("UPDATE "+table+" SET vote_score = vote_score + ? WHERE "+idColumn+" = ?", req.Value, req.TargetID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update score"})
			return
		}
		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vote"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"action": "created", "value": req.Value})
		return

	default:
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing vote"})
		return
	}
}
