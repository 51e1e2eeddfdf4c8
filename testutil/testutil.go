// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/camilosanz/urna/auth"
	"github.com/camilosanz/urna/cliparse"
	"github.com/camilosanz/urna/db"
	"github.com/camilosanz/urna/models"
)

// SetupTestDB creates a fresh SQLite database in the test's temp dir
// with the full schema. Each test gets its own file, so tests are
// isolated and need no external database server.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "election.db")
	conn, err := db.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5001,
		DatabaseType: "sqlite",
		AdminKey:     "test-admin-key",
		Roles:        []string{models.RolePersonero, models.RoleContralor},
	}
}

// CreateTestStudent inserts a student directly and returns the id and
// voting token
func CreateTestStudent(t *testing.T, conn *sql.DB, docID, fullName, grade, groupName string) (studentID, token string) {
	t.Helper()

	studentID = uuid.NewString()
	token, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	username := auth.DeriveUsername(fullName, docID)

	_, err = conn.Exec(`
		INSERT INTO student (id, doc_id, full_name, grade, group_name, username, token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, studentID, docID, fullName, grade, groupName, username, token, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test student: %v", err)
	}

	return studentID, token
}

// CreateTestCandidate inserts a candidate for a role and returns its id
func CreateTestCandidate(t *testing.T, conn *sql.DB, displayName, role string) string {
	t.Helper()

	candidateID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, display_name, role, created_at)
		VALUES ($1, $2, $3, $4)
	`, candidateID, displayName, role, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CastTestBallot writes a ledger entry directly, bypassing the state
// machine, for read-side tests
func CastTestBallot(t *testing.T, conn *sql.DB, studentID, role, candidateID string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO ballot_entry (id, student_id, role, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), studentID, role, candidateID, time.Now())
	if err != nil {
		t.Fatalf("Failed to cast test ballot: %v", err)
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
