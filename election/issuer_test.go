// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
	"testing"

	"github.com/camilosanz/urna/models"
	"github.com/camilosanz/urna/testutil"
)

func TestIssueCredentials(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	e := New(conn, []string{models.RolePersonero, models.RoleContralor})

	rows := []models.RosterRow{
		{DocID: "1002003", FullName: "Ana María Rojas", Grade: "11", GroupName: "11-A"},
		{DocID: "1002004", FullName: "Luis Pérez", Grade: "10", GroupName: "10-B"},
	}

	issued := 0
	for i, outcome := range e.IssueCredentials(rows) {
		if outcome.Err != nil {
			t.Fatalf("Row %d failed: %v", i, outcome.Err)
		}
		if outcome.Credential == nil {
			t.Fatalf("Row %d yielded no credential", i)
		}
		if outcome.Credential.Token == "" {
			t.Errorf("Row %d has empty token", i)
		}
		if outcome.Credential.Username == "" {
			t.Errorf("Row %d has empty username", i)
		}
		issued++
	}
	if issued != 2 {
		t.Errorf("Expected 2 outcomes, got %d", issued)
	}

	// Both students must be queryable by their tokens
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM student`).Scan(&count); err != nil {
		t.Fatalf("Failed to count students: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 students in roster, got %d", count)
	}
}

func TestIssueCredentialsRowErrors(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	e := New(conn, []string{models.RolePersonero})

	tests := []struct {
		name        string
		row         models.RosterRow
		expectedErr error
	}{
		{
			name:        "missing doc_id",
			row:         models.RosterRow{FullName: "Ana Rojas", Grade: "11", GroupName: "11-A"},
			expectedErr: ErrMissingField,
		},
		{
			name:        "missing full_name",
			row:         models.RosterRow{DocID: "1", Grade: "11", GroupName: "11-A"},
			expectedErr: ErrMissingField,
		},
		{
			name:        "missing grade",
			row:         models.RosterRow{DocID: "2", FullName: "Ana Rojas", GroupName: "11-A"},
			expectedErr: ErrMissingField,
		},
		{
			name:        "missing group_name",
			row:         models.RosterRow{DocID: "3", FullName: "Ana Rojas", Grade: "11"},
			expectedErr: ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, outcome := range e.IssueCredentials([]models.RosterRow{tt.row}) {
				if !errors.Is(outcome.Err, tt.expectedErr) {
					t.Errorf("Expected %v, got %v", tt.expectedErr, outcome.Err)
				}
				if outcome.Credential != nil {
					t.Error("Rejected row must not yield a credential")
				}
			}
		})
	}
}

func TestIssueCredentialsDuplicateDocID(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	e := New(conn, []string{models.RolePersonero})

	rows := []models.RosterRow{
		{DocID: "1002003", FullName: "Ana Rojas", Grade: "11", GroupName: "11-A"},
		{DocID: "1002003", FullName: "Ana Rojas", Grade: "11", GroupName: "11-A"},
		{DocID: "1002004", FullName: "Luis Pérez", Grade: "10", GroupName: "10-B"},
	}

	var outcomes []IssueOutcome
	for _, outcome := range e.IssueCredentials(rows) {
		outcomes = append(outcomes, outcome)
	}

	if outcomes[0].Err != nil {
		t.Fatalf("First row should issue: %v", outcomes[0].Err)
	}
	if !errors.Is(outcomes[1].Err, ErrDuplicateStudent) {
		t.Errorf("Expected ErrDuplicateStudent for repeated doc_id, got %v", outcomes[1].Err)
	}
	// A failed row never disturbs the rest of the batch
	if outcomes[2].Err != nil {
		t.Errorf("Third row should issue despite earlier failure: %v", outcomes[2].Err)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM student`).Scan(&count); err != nil {
		t.Fatalf("Failed to count students: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 students after duplicate skip, got %d", count)
	}
}

func TestIssueCredentialsReimportIsSafe(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	e := New(conn, []string{models.RolePersonero})

	rows := []models.RosterRow{
		{DocID: "1002003", FullName: "Ana Rojas", Grade: "11", GroupName: "11-A"},
	}

	var firstToken string
	for _, outcome := range e.IssueCredentials(rows) {
		if outcome.Err != nil {
			t.Fatalf("First import failed: %v", outcome.Err)
		}
		firstToken = outcome.Credential.Token
	}

	for _, outcome := range e.IssueCredentials(rows) {
		if !errors.Is(outcome.Err, ErrDuplicateStudent) {
			t.Errorf("Expected ErrDuplicateStudent on re-import, got %v", outcome.Err)
		}
	}

	// The original credential must survive the re-import untouched
	var token string
	err := conn.QueryRow(`SELECT token FROM student WHERE doc_id = $1`, "1002003").Scan(&token)
	if err != nil {
		t.Fatalf("Failed to query student: %v", err)
	}
	if token != firstToken {
		t.Error("Re-import must not replace an issued token")
	}
}

func TestIssueCredentialsUsernameCollision(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	e := New(conn, []string{models.RolePersonero})

	// Same name, doc ids ending in the same three digits: every row
	// derives the identical base username and must get a suffix.
	rows := []models.RosterRow{
		{DocID: "1000", FullName: "Maria Lopez", Grade: "11", GroupName: "11-A"},
		{DocID: "2000", FullName: "Maria Lopez", Grade: "11", GroupName: "11-A"},
		{DocID: "3000", FullName: "Maria Lopez", Grade: "11", GroupName: "11-A"},
	}

	usernames := make(map[string]bool)
	for i, outcome := range e.IssueCredentials(rows) {
		if outcome.Err != nil {
			t.Fatalf("Row %d failed: %v", i, outcome.Err)
		}
		if usernames[outcome.Credential.Username] {
			t.Errorf("Duplicate username issued: %s", outcome.Credential.Username)
		}
		usernames[outcome.Credential.Username] = true
	}

	if !usernames["mlopez000"] {
		t.Error("First student should get the bare username mlopez000")
	}
	if !usernames["mlopez0002"] {
		t.Error("Second student should get the suffixed username mlopez0002")
	}
}

func TestIssueCredentialsExhaustion(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	e := New(conn, []string{models.RolePersonero})

	// 21 identical base usernames: the bare name plus suffixes 2..20
	// cover exactly 20 students, so the 21st row must run out.
	rows := make([]models.RosterRow, 21)
	for i := range rows {
		rows[i] = models.RosterRow{
			DocID:     fmt.Sprintf("%d", (i+1)*1000),
			FullName:  "Maria Lopez",
			Grade:     "11",
			GroupName: "11-A",
		}
	}

	var errs []error
	for _, outcome := range e.IssueCredentials(rows) {
		errs = append(errs, outcome.Err)
	}

	for i := 0; i < 20; i++ {
		if errs[i] != nil {
			t.Fatalf("Row %d should issue within the retry budget: %v", i, errs[i])
		}
	}
	if !errors.Is(errs[20], ErrCredentialGenerationExhausted) {
		t.Errorf("Expected ErrCredentialGenerationExhausted for row 21, got %v", errs[20])
	}
}

func TestIssueCredentialsLazyStop(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	e := New(conn, []string{models.RolePersonero})

	rows := []models.RosterRow{
		{DocID: "1", FullName: "Ana Rojas", Grade: "11", GroupName: "11-A"},
		{DocID: "2", FullName: "Luis Pérez", Grade: "10", GroupName: "10-B"},
		{DocID: "3", FullName: "Sara Gil", Grade: "9", GroupName: "9-C"},
	}

	// Breaking out of the loop must stop issuance at that point
	for i := range e.IssueCredentials(rows) {
		if i == 0 {
			break
		}
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM student`).Scan(&count); err != nil {
		t.Fatalf("Failed to count students: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 student after early break, got %d", count)
	}
}
