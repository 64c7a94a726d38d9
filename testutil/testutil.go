// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/daily-ballot/auth"
	"github.com/danielhkuo/daily-ballot/cliparse"
	"github.com/danielhkuo/daily-ballot/db"
	"github.com/danielhkuo/daily-ballot/store"
	"github.com/danielhkuo/daily-ballot/testutil/dbtest"
)

// TestTokenSalt signs voter tokens in tests
const TestTokenSalt = "test-token-salt"

// SetupTestDB opens a fresh SQLite database with the full schema.
// The connection is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return dbtest.SQLite(t)
}

// SetupTestStore wraps SetupTestDB in a SQLStore
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	return store.NewSQLStore(SetupTestDB(t), db.TypeSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           8086,
		DatabaseType:   db.TypeSQLite,
		VoterTokenSalt: TestTokenSalt,
		LogFormat:      "text",
		RequestTimeout: 5 * time.Second,
	}
}

// CreateTestVoter registers a voter directly in the store and returns its ID
// and a token signed with cfg.VoterTokenSalt
func CreateTestVoter(t *testing.T, s store.Store, cfg cliparse.Config, username string) (voterID, token string) {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	voter, err := s.CreateVoter(context.Background(), username, username+"@example.com", hash)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voter.ID, auth.GenerateVoterToken(voter.ID, cfg.VoterTokenSalt)
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
