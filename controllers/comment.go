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

// CommentNode is a comment with its nested replies.
type CommentNode struct {
	models.Comment
	Replies []*CommentNode `json:"replies"`
}

// buildCommentTree turns a flat, chronologically ordered comment list into a
// reply tree. Comments whose parent is missing become roots.
func buildCommentTree(comments []models.Comment) []*CommentNode {
	nodes := make(map[string]*CommentNode, len(comments))
	roots := make([]*CommentNode, 0)

	for i := range comments {
		nodes[comments[i].CommentID] = &CommentNode{
			Comment: comments[i],
			Replies: []*CommentNode{},
		}
	}

	for i := range comments {
		node := nodes[comments[i].CommentID]
		if comments[i].ParentID != nil {
			if parent, ok := nodes[*comments[i].ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// GetComments returns the threaded comments of a paper.
func GetComments(c *gin.Context) {
	paperID := c.Param("id")

	var comments []models.Comment
	if err := config.DB.Preload("User").
		Where("paper_id = ?", paperID).
		Order("create_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": buildCommentTree(comments)})
}

// CreateComment adds a comment (or reply) to a paper.
func CreateComment(c *gin.Context) {
	userID, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	paperID := c.Param("id")

	var paper models.Paper
	if err := config.DB.Select("paper_id").Where("paper_id = ?", paperID).
		First(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load paper"})
		return
	}

	var req struct {
		Content  string  `json:"content"`
		ParentID *string `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	comment := models.Comment{
		CommentID: uuid.New().String(),
		PaperID:   paperID,
		UserID:    userID,
		ParentID:  req.ParentID,
		Content:   strings.TrimSpace(req.Content),
		CreateAt:  time.Now(),
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&comment).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}
	if err := tx.Exec("UPDATE papers SET comment_count = comment_count + 1 WHERE paper_id = ?", paperID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	var created models.Comment
	if err := config.DB.Preload("User").
		Where("comment_id = ?", comment.CommentID).
		First(&created).Error; err == nil {
		c.JSON(http.StatusCreated, gin.H{"data": created})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": comment})
}
