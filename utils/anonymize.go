package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/gsq7474741/Rubbish/models"
)

// Pseudonyms are an HMAC of the real user ID under a server-held secret, so
// the mapping is one-way and stable for the lifetime of the secret. Rotating
// ANON_HASH_SECRET unlinks every existing pseudonym at once.
var anonSecret = func() string {
	if s := os.Getenv("ANON_HASH_SECRET"); s != "" {
		return s
	}
	return "rubbish-review-default-anon-secret-change-me"
}()

// Pseudonym returns the deterministic anonymous ID for a user,
// formatted as "RR-" + 8 hex chars, e.g. "RR-a3f1b9c2".
//
// The 32-bit output space is narrow; collisions are unlikely at this
// community's scale but not impossible.
func Pseudonym(userID string) string {
	mac := hmac.New(sha256.New, []byte(anonSecret))
	mac.Write([]byte(userID))
	return "RR-" + hex.EncodeToString(mac.Sum(nil))[:8]
}

// AnonymizeProfile builds a profile object with all PII replaced.
// The pseudonym stands in for id, username and display_name; created_at
// survives so account age stays visible.
func AnonymizeProfile(profile map[string]interface{}) map[string]interface{} {
	if profile == nil {
		return nil
	}
	realID, _ := profile["id"].(string)
	anonID := Pseudonym(realID)
	return map[string]interface{}{
		"id":             anonID,
		"username":       anonID,
		"display_name":   anonID,
		"avatar_url":     nil,
		"bio":            nil,
		"institution":    nil,
		"research_field": nil,
		"title":          nil,
		"karma":          0,
		"created_at":     profile["created_at"],
	}
}

// AnonymizeRecord replaces the raw foreign-key ID field (author_id,
// reviewer_id, user_id, ...) and the joined profile under profileKey with
// anonymized values. A user always sees their own real identity, so records
// owned by currentUserID pass through untouched. The input is not mutated.
func AnonymizeRecord(record map[string]interface{}, profileKey, idField, currentUserID string) map[string]interface{} {
	if record == nil {
		return nil
	}

	realID, _ := record[idField].(string)
	if currentUserID != "" && realID == currentUserID {
		return record
	}

	out := make(map[string]interface{}, len(record))
	for k, v := range record {
		out[k] = v
	}
	if realID != "" {
		out[idField] = Pseudonym(realID)
	} else {
		out[idField] = nil
	}
	profile, _ := record[profileKey].(map[string]interface{})
	out[profileKey] = AnonymizeProfile(profile)
	return out
}

// AnonymizeList maps AnonymizeRecord over records, preserving order and length.
func AnonymizeList(records []map[string]interface{}, profileKey, idField, currentUserID string) []map[string]interface{} {
	out := make([]map[string]interface{}, len(records))
	for i, r := range records {
		out[i] = AnonymizeRecord(r, profileKey, idField, currentUserID)
	}
	return out
}

// SanitizeUser is the typed counterpart of AnonymizeProfile for handlers that
// return preloaded GORM relations (anonymous reviews, blind-mode reviewer
// lists). It returns a copy; the input is not mutated.
func SanitizeUser(u models.User) models.User {
	anonID := Pseudonym(u.UserID)
	return models.User{
		UserID:      anonID,
		Username:    anonID,
		DisplayName: anonID,
		Karma:       0,
		CreateAt:    u.CreateAt,
	}
}
