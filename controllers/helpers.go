package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func getCurrentUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

func getCurrentRole(c *gin.Context) (string, bool) {
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok && role != "" {
			return role, true
		}
	}
	return "", false
}

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}
