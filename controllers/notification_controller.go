package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gsq7474741/Rubbish/config"
	"github.com/gsq7474741/Rubbish/models"
)

// GetNotifications lists the current user's notifications, newest first.
func GetNotifications(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	_, limit, offset := parsePagination(c)

	query := config.DB.Model(&models.Notification{}).Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	var notifications []models.Notification
	if err := query.Order("create_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	var unread int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"data":         notifications,
		"count":        total,
		"unread_count": unread,
	})
}

// MarkNotificationsRead marks the given notification ids as read, or all
// unread notifications when no ids are provided.
func MarkNotificationsRead(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		IDs []uint `json:"ids"`
	}
	_ = c.ShouldBindJSON(&req)

	query := config.DB.Model(&models.Notification{}).Where("user_id = ?", userID)
	if len(req.IDs) > 0 {
		query = query.Where("notification_id IN ?", req.IDs)
	} else {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
