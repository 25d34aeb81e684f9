package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gsq7474741/Rubbish/config"
	"github.com/gsq7474741/Rubbish/models"
	"github.com/gsq7474741/Rubbish/utils"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// GetVenues lists all venues.
func GetVenues(c *gin.Context) {
	var venues []models.Venue
	if err := config.DB.Order("paper_count DESC, create_at ASC").Find(&venues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch venues"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": venues})
}

// GetVenue returns a venue by slug with a page of its papers.
func GetVenue(c *gin.Context) {
	slug := c.Param("slug")

	var venue models.Venue
	if err := config.DB.Where("slug = ?", slug).First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load venue"})
		return
	}

	page, limit, offset := parsePagination(c)

	var total int64
	config.DB.Model(&models.Paper{}).Where("venue_id = ?", venue.VenueID).Count(&total)

	var papers []models.Paper
	if err := config.DB.Preload("Author").
		Where("venue_id = ?", venue.VenueID).
		Order("create_at DESC").
		Offset(offset).Limit(limit).
		Find(&papers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"venue":  venue,
		"papers": papers,
		"count":  total,
		"page":   page,
		"limit":  limit,
	})
}

// CreateVenue registers a new venue with a fixed review mode.
func CreateVenue(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Slug        string `json:"slug" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		ReviewMode  string `json:"review_mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug must be lowercase letters, digits and hyphens"})
		return
	}
	switch req.ReviewMode {
	case models.ReviewModeOpen, models.ReviewModeBlind, models.ReviewModeInstant:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review_mode"})
		return
	}

	var count int64
	config.DB.Model(&models.Venue{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A venue with this slug already exists"})
		return
	}

	venue := models.Venue{
		VenueID:     uuid.New().String(),
		Slug:        slug,
		Name:        utils.SanitizeInput(req.Name),
		Description: req.Description,
		ReviewMode:  req.ReviewMode,
		CreatedBy:   userID,
		CreateAt:    time.Now(),
	}
	if err := config.DB.Create(&venue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create venue"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": venue})
}

// GetActivity returns the recent activity feed, optionally scoped to a venue.
func GetActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := config.DB.Model(&models.ActivityLog{}).
		Preload("User").
		Order("create_at DESC").
		Limit(limit)

	if venueID := c.Query("venue_id"); venueID != "" {
		query = query.Where("venue_id = ?", venueID)
	}

	var entries []models.ActivityLog
	if err := query.Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
