package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	// Validation fires before any uniqueness lookup; no queries expected.
	state := useScriptedDB(t, nil)

	c, w := newTestContext(t, "POST", "/api/v1/register",
		`{"username":"trashpanda","email":"not-an-email","password":"longenough1"}`)

	Register(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Invalid email format" {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
