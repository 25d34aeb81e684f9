package controllers

import (
	"database/sql/driver"
	"net/http"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCreateReviewByAuthorIsForbidden(t *testing.T) {
	state := useScriptedDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `papers` WHERE paper_id = \\?"),
			args:    []driver.Value{"paper-1"},
			columns: []string{"paper_id", "author_id", "status", "review_mode"},
			rows:    [][]driver.Value{{"paper-1", "author-1", "under_review", "open"}},
		},
	})

	c, w := newTestContext(t, "POST", "/api/v1/papers/paper-1/reviews", "{}")
	c.Set("userID", "author-1")
	c.Params = gin.Params{{Key: "id", Value: "paper-1"}}

	CreateReview(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreateReviewDuplicateIsRejectedWithoutWrites(t *testing.T) {
	state := useScriptedDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `papers` WHERE paper_id = \\?"),
			args:    []driver.Value{"paper-1"},
			columns: []string{"paper_id", "author_id", "status", "review_mode"},
			rows:    [][]driver.Value{{"paper-1", "author-1", "under_review", "open"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `reviews` WHERE paper_id = \\? AND reviewer_id = \\?"),
			args:    []driver.Value{"paper-1", "reviewer-2"},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	})

	c, w := newTestContext(t, "POST", "/api/v1/papers/paper-1/reviews",
		`{"rubbish_score":9,"uselessness_score":8,"entertainment_score":7,"summary":"again","recommendation":"certified_rubbish"}`)
	c.Set("userID", "reviewer-2")
	c.Params = gin.Params{{Key: "id", Value: "paper-1"}}

	CreateReview(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	// verifyComplete proves the duplicate left no trace: no review insert,
	// no counter update, no decision engine queries.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
