package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsq7474741/Rubbish/config"
	"github.com/gsq7474741/Rubbish/models"
)

var reportableTypes = map[string]bool{
	"paper":   true,
	"comment": true,
	"review":  true,
	"profile": true,
}

// CreateReport files a moderation report against a paper, comment, review or
// profile. A user can only have one pending report per target.
func CreateReport(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		TargetType  string  `json:"target_type"`
		TargetID    string  `json:"target_id"`
		Reason      string  `json:"reason"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.TargetType == "" || req.TargetID == "" || strings.TrimSpace(req.Reason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_type, target_id, and reason are required"})
		return
	}
	if !reportableTypes[req.TargetType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target_type"})
		return
	}

	var pending int64
	if err := config.DB.Model(&models.Report{}).
		Where("reporter_id = ? AND target_type = ? AND target_id = ? AND status = ?",
			userID, req.TargetType, req.TargetID, models.ReportPending).
		Count(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing reports"})
		return
	}
	if pending > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already reported this item"})
		return
	}

	report := models.Report{
		ReportID:    uuid.New().String(),
		ReporterID:  userID,
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Reason:      strings.TrimSpace(req.Reason),
		Description: req.Description,
		Status:      models.ReportPending,
		CreateAt:    time.Now(),
	}
	if err := config.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": report})
}

// GetReports lists reports by status. Admin only.
func GetReports(c *gin.Context) {
	status := c.DefaultQuery("status", models.ReportPending)

	var reports []models.Report
	if err := config.DB.Preload("Reporter").
		Where("status = ?", status).
		Order("create_at DESC").
		Limit(50).
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reports})
}

// ResolveReport closes a pending report as resolved or dismissed. Admin only.
func ResolveReport(c *gin.Context) {
	adminID, _ := getCurrentUserID(c)
	reportID := c.Param("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Status != models.ReportResolved && req.Status != models.ReportDismissed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be 'resolved' or 'dismissed'"})
		return
	}

	var report models.Report
	if err := config.DB.Where("report_id = ?", reportID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}
	if report.Status != models.ReportPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Report has already been handled"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&models.Report{}).
		Where("report_id = ? AND status = ?", reportID, models.ReportPending).
		Updates(map[string]interface{}{
			"status":      req.Status,
			"resolved_by": adminID,
			"resolved_at": now,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report " + req.Status})
}
