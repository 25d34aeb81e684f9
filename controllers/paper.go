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
	"github.com/gsq7474741/Rubbish/services"
	"github.com/gsq7474741/Rubbish/utils"
)

type CreatePaperRequest struct {
	Title           string  `json:"title" binding:"required"`
	Abstract        string  `json:"abstract"`
	Keywords        *string `json:"keywords"`
	ContentType     string  `json:"content_type" binding:"required"`
	ContentMarkdown *string `json:"content_markdown"`
	PDFURL          *string `json:"pdf_url"`
	VenueID         string  `json:"venue_id" binding:"required"`
	InviteCode      string  `json:"invite_code"`
}

// GetPapers lists papers with venue/status filters, sorting and pagination.
func GetPapers(c *gin.Context) {
	page, limit, offset := parsePagination(c)

	query := config.DB.Model(&models.Paper{}).
		Preload("Author").
		Preload("Venue")

	if venue := c.Query("venue"); venue != "" {
		query = query.Where("venue_id = ?", venue)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	switch c.DefaultQuery("sort", "hot") {
	case "latest":
		query = query.Order("create_at DESC")
	case "top":
		query = query.Order("avg_rubbish_score DESC")
	default: // hot
		query = query.Order("vote_score DESC, create_at DESC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}

	var papers []models.Paper
	if err := query.Offset(offset).Limit(limit).Find(&papers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  papers,
		"count": total,
		"page":  page,
		"limit": limit,
	})
}

// SearchPapers performs a title/abstract search.
func SearchPapers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}
	_, limit, _ := parsePagination(c)

	like := "%" + q + "%"
	var papers []models.Paper
	if err := config.DB.Preload("Author").Preload("Venue").
		Where("title LIKE ? OR abstract LIKE ?", like, like).
		Order("create_at DESC").
		Limit(limit).
		Find(&papers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": papers})
}

// GetPaper returns a single paper and bumps its view counter.
func GetPaper(c *gin.Context) {
	id := c.Param("id")

	var paper models.Paper
	if err := config.DB.Preload("Author").Preload("Venue").
		Where("paper_id = ?", id).
		First(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch paper"})
		return
	}

	// View count is best-effort; a failed increment never blocks the read.
	config.DB.Exec("UPDATE papers SET view_count = view_count + 1 WHERE paper_id = ?", id)

	c.JSON(http.StatusOK, gin.H{"data": paper})
}

// CreatePaper submits a paper to a venue. The venue's current review mode is
// copied onto the paper and stays fixed. Instant-mode venues require a valid
// invite code and publish immediately with a certified_rubbish decision,
// bypassing review entirely.
func CreatePaper(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var venue models.Venue
	if err := config.DB.Where("venue_id = ?", req.VenueID).First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load venue"})
		return
	}

	now := time.Now()

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if venue.ReviewMode == models.ReviewModeInstant {
		if err := consumeInviteCode(tx, req.InviteCode, userID); err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	status := models.StatusSubmitted
	var decision *string
	var decisionAt *time.Time
	if venue.ReviewMode == models.ReviewModeInstant {
		status = models.StatusPublished
		d := models.DecisionCertifiedRubbish
		decision = &d
		decisionAt = &now
	}

	// Sequential per-venue display number.
	var numbered int64
	if err := tx.Model(&models.Paper{}).
		Where("venue_id = ?", venue.VenueID).
		Count(&numbered).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create paper"})
		return
	}

	paper := models.Paper{
		PaperID:         uuid.New().String(),
		PaperNumber:     int(numbered) + 1,
		VenueID:         venue.VenueID,
		AuthorID:        userID,
		Title:           utils.SanitizeInput(req.Title),
		Abstract:        req.Abstract,
		Keywords:        req.Keywords,
		ContentType:     req.ContentType,
		ContentMarkdown: req.ContentMarkdown,
		PDFURL:          req.PDFURL,
		Status:          status,
		ReviewMode:      venue.ReviewMode,
		Decision:        decision,
		DecisionAt:      decisionAt,
		CreateAt:        now,
	}

	if err := tx.Create(&paper).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create paper"})
		return
	}

	if err := tx.Exec("UPDATE venues SET paper_count = paper_count + 1 WHERE venue_id = ?", venue.VenueID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create paper"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create paper"})
		return
	}

	venueID := venue.VenueID
	services.LogActivity(config.DB, &venueID, userID, "submission", "paper", paper.PaperID, map[string]interface{}{
		"paper_title": paper.Title,
		"paper_id":    paper.PaperID,
	})

	c.JSON(http.StatusCreated, gin.H{"data": paper})
}

// UpdatePaper lets the author edit content fields. Lifecycle fields are not
// editable through this endpoint.
func UpdatePaper(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")

	var paper models.Paper
	if err := config.DB.Where("paper_id = ?", id).First(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load paper"})
		return
	}
	if paper.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can edit this paper"})
		return
	}

	var req struct {
		Title           *string `json:"title"`
		Abstract        *string `json:"abstract"`
		Keywords        *string `json:"keywords"`
		ContentMarkdown *string `json:"content_markdown"`
		PDFURL          *string `json:"pdf_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.Title != nil {
		updates["title"] = utils.SanitizeInput(*req.Title)
	}
	if req.Abstract != nil {
		updates["abstract"] = *req.Abstract
	}
	if req.Keywords != nil {
		updates["keywords"] = *req.Keywords
	}
	if req.ContentMarkdown != nil {
		updates["content_markdown"] = *req.ContentMarkdown
	}
	if req.PDFURL != nil {
		updates["pdf_url"] = *req.PDFURL
	}

	if err := config.DB.Model(&models.Paper{}).
		Where("paper_id = ? AND author_id = ?", id, userID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update paper"})
		return
	}

	var updated models.Paper
	if err := config.DB.Preload("Author").Preload("Venue").
		Where("paper_id = ?", id).First(&updated).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Paper updated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// WithdrawPaper moves a paper to the terminal withdrawn state. The author or
// a content admin can withdraw; independent of the decision engine.
func WithdrawPaper(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")

	var paper models.Paper
	if err := config.DB.Where("paper_id = ?", id).First(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load paper"})
		return
	}
	role, _ := getCurrentRole(c)
	isModerator := role == models.RoleContentAdmin || role == models.RoleSystemAdmin
	if paper.AuthorID != userID && !isModerator {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can withdraw this paper"})
		return
	}
	if paper.Status == models.StatusWithdrawn {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paper is already withdrawn"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	reason := strings.TrimSpace(req.Reason)

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.StatusWithdrawn,
		"withdrawn_at": now,
		"update_at":    now,
	}
	if reason != "" {
		updates["withdrawal_reason"] = reason
	}

	if err := config.DB.Model(&models.Paper{}).
		Where("paper_id = ? AND status <> ?", id, models.StatusWithdrawn).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw paper"})
		return
	}

	venueID := paper.VenueID
	services.LogActivity(config.DB, &venueID, userID, "withdrawal", "paper", id, map[string]interface{}{
		"paper_title": paper.Title,
		"reason":      reason,
	})

	body := "Your paper \"" + paper.Title + "\" has been withdrawn."
	if reason != "" {
		body += " Reason: " + reason
	}
	link := "/paper/" + id
	services.Notify(config.DB, paper.AuthorID, "submission", "Paper withdrawn", body, &link)

	var updated models.Paper
	if err := config.DB.Where("paper_id = ?", id).First(&updated).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Paper withdrawn"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}
