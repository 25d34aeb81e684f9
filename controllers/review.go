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

type CreateReviewRequest struct {
	RubbishScore       int     `json:"rubbish_score"`
	UselessnessScore   int     `json:"uselessness_score"`
	EntertainmentScore int     `json:"entertainment_score"`
	Summary            string  `json:"summary"`
	Strengths          *string `json:"strengths"`
	Weaknesses         *string `json:"weaknesses"`
	Recommendation     string  `json:"recommendation"`
	IsAnonymous        bool    `json:"is_anonymous"`
}

// GetReviews lists reviews for a paper, newest first. Reviewer identities are
// pseudonymized for anonymous reviews and for blind-mode papers; a reviewer
// always sees their own review unmasked.
func GetReviews(c *gin.Context) {
	paperID := c.Param("id")
	currentUserID, _ := getCurrentUserID(c)

	var paper models.Paper
	if err := config.DB.Select("paper_id", "review_mode").
		Where("paper_id = ?", paperID).
		First(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load paper"})
		return
	}

	var reviews []models.Review
	if err := config.DB.Preload("Reviewer").
		Preload("Rebuttals").
		Preload("Rebuttals.Author").
		Where("paper_id = ?", paperID).
		Order("create_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	blind := paper.ReviewMode == models.ReviewModeBlind
	for i := range reviews {
		r := &reviews[i]
		if !r.IsAnonymous && !blind {
			continue
		}
		if currentUserID != "" && r.ReviewerID == currentUserID {
			continue
		}
		r.ReviewerID = utils.Pseudonym(r.ReviewerID)
		if r.Reviewer != nil {
			sanitized := utils.SanitizeUser(*r.Reviewer)
			r.Reviewer = &sanitized
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": reviews})
}

// CreateReview persists a review and runs the decision engine.
//
// Precondition order and status codes are part of the API contract:
// 401 unauthenticated, 404 paper missing, 403 self-review, 409 duplicate,
// 400 missing/invalid fields.
func CreateReview(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	paperID := c.Param("id")

	var paper models.Paper
	if err := config.DB.Where("paper_id = ?", paperID).First(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load paper"})
		return
	}

	if paper.AuthorID == userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot review your own paper"})
		return
	}

	var existing int64
	if err := config.DB.Model(&models.Review{}).
		Where("paper_id = ? AND reviewer_id = ?", paperID, userID).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing reviews"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this paper"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.RubbishScore == 0 || req.UselessnessScore == 0 || req.EntertainmentScore == 0 || req.Recommendation == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if !utils.ValidateScore(req.RubbishScore) || !utils.ValidateScore(req.UselessnessScore) || !utils.ValidateScore(req.EntertainmentScore) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scores must be between 1 and 10"})
		return
	}
	if !utils.ValidateRecommendation(req.Recommendation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recommendation"})
		return
	}

	review := models.Review{
		ReviewID:           uuid.New().String(),
		PaperID:            paperID,
		ReviewerID:         userID,
		RubbishScore:       req.RubbishScore,
		UselessnessScore:   req.UselessnessScore,
		EntertainmentScore: req.EntertainmentScore,
		Summary:            strings.TrimSpace(req.Summary),
		Strengths:          req.Strengths,
		Weaknesses:         req.Weaknesses,
		Recommendation:     req.Recommendation,
		IsAnonymous:        req.IsAnonymous,
		CreateAt:           time.Now(),
	}
	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	// The running average must read review_count before the same statement
	// increments it, so this stays a raw UPDATE with a fixed SET order.
	if err := config.DB.Exec(
		"UPDATE papers SET avg_rubbish_score = (avg_rubbish_score * review_count + ?) / (review_count + 1), review_count = review_count + 1, update_at = ? WHERE paper_id = ?",
		req.RubbishScore, time.Now(), paperID,
	).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update paper counters"})
		return
	}

	// The review is already persisted; an engine failure is a partial
	// success that must surface loudly rather than roll anything back.
	engine := services.NewDecisionService(config.DB)
	if err := engine.ProcessNewReview(&paper); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review saved but paper status update failed"})
		return
	}

	link := "/paper/" + paperID
	services.Notify(config.DB, paper.AuthorID, "new_review", "New review on your paper",
		"A reviewer has submitted an official review.", &link)

	venueID := paper.VenueID
	services.LogActivity(config.DB, &venueID, userID, "review", "review", review.ReviewID, map[string]interface{}{
		"paper_title": paper.Title,
		"paper_id":    paperID,
	})

	c.JSON(http.StatusCreated, gin.H{"data": review})
}

// GetRebuttals lists the author responses attached to a review.
func GetRebuttals(c *gin.Context) {
	reviewID := c.Param("review_id")

	var rebuttals []models.Rebuttal
	if err := config.DB.Preload("Author").
		Where("review_id = ?", reviewID).
		Order("create_at ASC").
		Find(&rebuttals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rebuttals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rebuttals})
}

// CreateRebuttal appends an author response to a review. Rebuttals never feed
// back into the decision engine.
func CreateRebuttal(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	paperID := c.Param("id")
	reviewID := c.Param("review_id")

	var paper models.Paper
	if err := config.DB.Select("paper_id", "author_id").
		Where("paper_id = ?", paperID).
		First(&paper).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}
	if paper.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the paper author can submit a rebuttal"})
		return
	}

	var count int64
	if err := config.DB.Model(&models.Review{}).
		Where("review_id = ? AND paper_id = ?", reviewID, paperID).
		Count(&count).Error; err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	rebuttal := models.Rebuttal{
		RebuttalID: uuid.New().String(),
		ReviewID:   reviewID,
		AuthorID:   userID,
		Content:    strings.TrimSpace(req.Content),
		CreateAt:   time.Now(),
	}
	if err := config.DB.Create(&rebuttal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rebuttal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": rebuttal})
}
