package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/gsq7474741/Rubbish/models"
)

var pseudonymPattern = regexp.MustCompile(`^RR-[0-9a-f]{8}$`)

func TestPseudonymDeterministicAndFormatted(t *testing.T) {
	a := Pseudonym("2f1b8a7e-0000-4000-8000-000000000001")
	b := Pseudonym("2f1b8a7e-0000-4000-8000-000000000001")
	if a != b {
		t.Fatalf("pseudonym not stable: %q vs %q", a, b)
	}
	if !pseudonymPattern.MatchString(a) {
		t.Fatalf("unexpected pseudonym format: %q", a)
	}

	other := Pseudonym("2f1b8a7e-0000-4000-8000-000000000002")
	if other == a {
		t.Fatalf("distinct users mapped to the same pseudonym %q", a)
	}
}

func TestAnonymizeRecordSelfExemption(t *testing.T) {
	record := map[string]interface{}{
		"review_id":   "r1",
		"reviewer_id": "user-1",
		"reviewer": map[string]interface{}{
			"id":           "user-1",
			"username":     "trashpanda",
			"display_name": "Trash Panda",
		},
	}

	same := AnonymizeRecord(record, "reviewer", "reviewer_id", "user-1")
	if same["reviewer_id"] != "user-1" {
		t.Fatalf("own record must keep the real id, got %v", same["reviewer_id"])
	}
	profile := same["reviewer"].(map[string]interface{})
	if profile["username"] != "trashpanda" {
		t.Fatalf("own profile must pass through untouched")
	}
}

func TestAnonymizeRecordReplacesPII(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	record := map[string]interface{}{
		"review_id":   "r1",
		"reviewer_id": "user-1",
		"reviewer": map[string]interface{}{
			"id":           "user-1",
			"username":     "trashpanda",
			"display_name": "Trash Panda",
			"institution":  "Dumpster U",
			"karma":        42,
			"created_at":   created,
		},
	}

	anon := AnonymizeRecord(record, "reviewer", "reviewer_id", "")
	want := Pseudonym("user-1")
	if anon["reviewer_id"] != want {
		t.Fatalf("reviewer_id: got %v want %q", anon["reviewer_id"], want)
	}

	profile := anon["reviewer"].(map[string]interface{})
	if profile["id"] != want || profile["username"] != want || profile["display_name"] != want {
		t.Fatalf("profile identity fields must all carry the pseudonym, got %v", profile)
	}
	if profile["institution"] != nil {
		t.Fatalf("institution must be nulled, got %v", profile["institution"])
	}
	if profile["karma"] != 0 {
		t.Fatalf("karma must be zeroed, got %v", profile["karma"])
	}
	if profile["created_at"] != created {
		t.Fatalf("created_at must be preserved, got %v", profile["created_at"])
	}

	// The input must not be mutated.
	if record["reviewer_id"] != "user-1" {
		t.Fatalf("input record was mutated")
	}
	original := record["reviewer"].(map[string]interface{})
	if original["username"] != "trashpanda" {
		t.Fatalf("input profile was mutated")
	}
}

func TestAnonymizeListPreservesOrderAndLength(t *testing.T) {
	records := []map[string]interface{}{
		{"comment_id": "c1", "user_id": "user-1", "user": map[string]interface{}{"id": "user-1"}},
		{"comment_id": "c2", "user_id": "user-2", "user": map[string]interface{}{"id": "user-2"}},
		{"comment_id": "c3", "user_id": "user-1", "user": map[string]interface{}{"id": "user-1"}},
	}

	out := AnonymizeList(records, "user", "user_id", "")
	if len(out) != len(records) {
		t.Fatalf("length changed: got %d want %d", len(out), len(records))
	}
	for i, r := range out {
		if r["comment_id"] != records[i]["comment_id"] {
			t.Fatalf("order not preserved at index %d", i)
		}
	}
	if out[0]["user_id"] != out[2]["user_id"] {
		t.Fatalf("same user must map to the same pseudonym across a list")
	}
	if out[0]["user_id"] == out[1]["user_id"] {
		t.Fatalf("distinct users collided in list anonymization")
	}
}

func TestSanitizeUser(t *testing.T) {
	bio := "I collect garbage."
	created := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	user := models.User{
		UserID:      "user-1",
		Username:    "trashpanda",
		DisplayName: "Trash Panda",
		Bio:         &bio,
		Karma:       42,
		CreateAt:    created,
	}

	got := SanitizeUser(user)
	want := Pseudonym("user-1")
	if got.UserID != want || got.Username != want || got.DisplayName != want {
		t.Fatalf("identity fields must carry the pseudonym, got %+v", got)
	}
	if got.Bio != nil || got.Karma != 0 {
		t.Fatalf("PII must be stripped, got %+v", got)
	}
	if !got.CreateAt.Equal(created) {
		t.Fatalf("created_at must be preserved")
	}
	if user.Username != "trashpanda" {
		t.Fatalf("input user was mutated")
	}
}
