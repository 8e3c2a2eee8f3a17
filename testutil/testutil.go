// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/pollhall/auth"
	"github.com/danielhkuo/pollhall/cliparse"
	"github.com/danielhkuo/pollhall/db"
	"github.com/danielhkuo/pollhall/models"
	"github.com/danielhkuo/pollhall/store"
)

// TestPassword is the plaintext password every test user gets.
const TestPassword = "password123"

var dbCounter atomic.Int64

// SetupTestDB creates a fresh in-memory database with the full schema and
// the default dual-key vote indexes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return SetupTestDBWithPolicy(t, models.PolicyDualKey)
}

// SetupTestDBWithPolicy creates a fresh in-memory database with the schema
// for the given vote policy. Each call gets its own named shared-cache
// database so tests stay isolated.
func SetupTestDBWithPolicy(t *testing.T, policy string) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:pollhall_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	conn, err := db.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, policy); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3320,
		DatabaseType: "sqlite",
		DatabaseURL:  "file::memory:",
		TokenSecret:  "test-token-secret",
		IPHashSalt:   "test-ip-salt",
		VotePolicy:   models.PolicyDualKey,
	}
}

// CreateTestUser registers a user directly in the database and returns it.
// The password is always TestPassword.
func CreateTestUser(t *testing.T, dbConn *sql.DB, username, email string) models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	user, err := store.NewUserStore(dbConn).Create(username, email, hash)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestPoll stores a poll with the given options. ownerID may be empty.
func CreateTestPoll(t *testing.T, dbConn *sql.DB, ownerID, question string, options ...string) models.Poll {
	t.Helper()

	poll, err := store.NewPollStore(dbConn).Create(question, options, ownerID)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// CastTestVote writes a ledger entry and its counter delta directly, for
// tests that need pre-existing votes.
func CastTestVote(t *testing.T, dbConn *sql.DB, pollID string, voter models.Identity, optionIndex int) models.VoteRecord {
	t.Helper()

	rec, err := store.NewVoteLedger(dbConn).Insert(pollID, voter, optionIndex)
	if err != nil {
		t.Fatalf("Failed to insert test vote: %v", err)
	}
	if err := store.NewPollStore(dbConn).ApplyOptionDelta(pollID, optionIndex, +1); err != nil {
		t.Fatalf("Failed to apply test vote delta: %v", err)
	}
	return rec
}

// BearerHeader returns the Authorization header map for a signed-in user.
func BearerHeader(cfg cliparse.Config, userID string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + auth.SignToken(userID, cfg.TokenSecret, auth.DefaultTokenTTL),
	}
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

// ParseResponse decodes a JSON response body into the given struct
func ParseResponse(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to parse response body: %v", err)
	}
}
