package controllers

import (
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/gsq7474741/Rubbish/models"
)

func TestCreatePaperInstantModePublishesImmediately(t *testing.T) {
	state := useScriptedDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `venues` WHERE venue_id = \\?"),
			args:    []driver.Value{"venue-1"},
			columns: []string{"venue_id", "slug", "name", "review_mode", "created_by"},
			rows:    [][]driver.Value{{"venue-1", "instant-hall", "Instant Hall", "instant", "owner-1"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `invite_codes` WHERE code = \\?"),
			args:    []driver.Value{"RR-ABCD-EFGH"},
			columns: []string{"code", "creator_id", "used_by"},
			rows:    [][]driver.Value{{"RR-ABCD-EFGH", "owner-1", nil}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `invite_codes` SET .* WHERE code = \\? AND used_by IS NULL"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `papers` WHERE venue_id = \\?"),
			args:    []driver.Value{"venue-1"},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `papers`"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE venues SET paper_count = paper_count \\+ 1 WHERE venue_id = \\?"),
			args:    []driver.Value{"venue-1"},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `activity_log`"),
			result:  scriptedResult{rowsAffected: 1},
		},
	})

	c, w := newTestContext(t, "POST", "/api/v1/papers",
		`{"title":"On the Aerodynamics of Soggy Cardboard","content_type":"markdown","venue_id":"venue-1","invite_code":"RR-ABCD-EFGH"}`)
	c.Set("userID", "author-1")

	CreatePaper(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.Paper `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Status != models.StatusPublished {
		t.Fatalf("expected status %q, got %q", models.StatusPublished, resp.Data.Status)
	}
	if resp.Data.Decision == nil || *resp.Data.Decision != models.DecisionCertifiedRubbish {
		t.Fatalf("expected decision certified_rubbish, got %v", resp.Data.Decision)
	}
	if resp.Data.DecisionAt == nil {
		t.Fatalf("expected decision_at to be set")
	}
	if resp.Data.ReviewMode != models.ReviewModeInstant {
		t.Fatalf("expected review_mode instant, got %q", resp.Data.ReviewMode)
	}
	if resp.Data.PaperNumber != 1 {
		t.Fatalf("expected paper number 1, got %d", resp.Data.PaperNumber)
	}

	// verifyComplete proves the decision engine never ran: no review tally,
	// no status update beyond the insert itself.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreatePaperInstantModeRequiresValidInviteCode(t *testing.T) {
	used := "someone-else"
	state := useScriptedDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `venues` WHERE venue_id = \\?"),
			args:    []driver.Value{"venue-1"},
			columns: []string{"venue_id", "slug", "name", "review_mode", "created_by"},
			rows:    [][]driver.Value{{"venue-1", "instant-hall", "Instant Hall", "instant", "owner-1"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `invite_codes` WHERE code = \\?"),
			args:    []driver.Value{"RR-ABCD-EFGH"},
			columns: []string{"code", "creator_id", "used_by"},
			rows:    [][]driver.Value{{"RR-ABCD-EFGH", "owner-1", used}},
		},
	})

	c, w := newTestContext(t, "POST", "/api/v1/papers",
		`{"title":"Recycled Submission","content_type":"markdown","venue_id":"venue-1","invite_code":"RR-ABCD-EFGH"}`)
	c.Set("userID", "author-1")

	CreatePaper(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
