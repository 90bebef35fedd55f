// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/unielect/audit"
	"github.com/danielhkuo/unielect/auth"
	"github.com/danielhkuo/unielect/biometric"
	"github.com/danielhkuo/unielect/cliparse"
	"github.com/danielhkuo/unielect/identity"
	"github.com/danielhkuo/unielect/ledger"
	"github.com/danielhkuo/unielect/models"
	"github.com/danielhkuo/unielect/session"
)

// TestPassword is the password every fixture identity registers with.
const TestPassword = "correct-horse-battery"

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           8000,
		DatabaseURL:    "file::memory:",
		DatabaseType:   "sqlite",
		LogHashSalt:    "test-log-salt",
		MatchThreshold: 0.80,
		CaptureTimeout: 2 * time.Second,
		PollInterval:   50 * time.Millisecond,
	}
}

// EnrollImage returns a deterministic fake webcam frame for an
// identity, large enough to pass the liveness floor. The same ID
// always yields the same frame, so it matches its own enrollment.
func EnrollImage(id string) []byte {
	return bytes.Repeat([]byte(id+"|frame|"), 16)
}

// AddVoter registers a voter with the fixture password and an
// enrollment frame derived from the ID.
func AddVoter(t *testing.T, store identity.Store, id string) {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash fixture password: %v", err)
	}

	err = store.CreateVoter(models.Identity{
		ID:           id,
		FirstName:    "Test",
		LastName:     "Voter " + id,
		Email:        id + "@campus.test",
		PasswordHash: hash,
		TemplateRef:  biometric.TemplateRef(EnrollImage(id)),
	})
	if err != nil {
		t.Fatalf("Failed to create test voter %s: %v", id, err)
	}
}

// AddCandidate registers a candidate with the fixture password.
func AddCandidate(t *testing.T, store identity.Store, id string) {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash fixture password: %v", err)
	}

	err = store.CreateCandidate(models.Candidate{
		Identity: models.Identity{
			ID:           id,
			FirstName:    "Test",
			LastName:     "Candidate " + id,
			Email:        id + "@campus.test",
			PasswordHash: hash,
			TemplateRef:  biometric.TemplateRef(EnrollImage(id)),
		},
		Bio: "Fixture candidate " + id,
	})
	if err != nil {
		t.Fatalf("Failed to create test candidate %s: %v", id, err)
	}
}

// Election bundles a fully wired in-memory election for tests.
type Election struct {
	Store    *identity.MemStore
	Matcher  *biometric.TemplateMatcher
	AuthLog  *session.AuditLog
	Sessions *session.Manager
	Votes    *ledger.Ledger
	Auditor  *audit.Auditor
	Cfg      cliparse.Config
}

// NewElection wires the services over a MemStore with a nop journal.
func NewElection(t *testing.T) *Election {
	t.Helper()

	cfg := GetTestConfig()
	store := identity.NewMemStore()
	matcher := biometric.NewTemplateMatcher(store)
	authLog := session.NewAuditLog()
	sessions := session.NewManager(store, matcher, authLog,
		cfg.MatchThreshold, cfg.CaptureTimeout, cfg.LogHashSalt)

	votes, err := ledger.New(store, ledger.NopJournal(), cfg.LogHashSalt)
	if err != nil {
		t.Fatalf("Failed to build test ledger: %v", err)
	}

	return &Election{
		Store:    store,
		Matcher:  matcher,
		AuthLog:  authLog,
		Sessions: sessions,
		Votes:    votes,
		Auditor:  audit.NewAuditor(votes),
		Cfg:      cfg,
	}
}

// Authenticate completes both factors for an identity and returns the
// redeemable capture token.
func Authenticate(t *testing.T, e *Election, id string) string {
	t.Helper()

	token, err := e.Sessions.Begin(id, TestPassword)
	if err != nil {
		t.Fatalf("Failed to begin session for %s: %v", id, err)
	}

	if _, _, err := e.Sessions.SubmitCapture(t.Context(), token, EnrollImage(id)); err != nil {
		t.Fatalf("Failed to verify capture for %s: %v", id, err)
	}

	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
