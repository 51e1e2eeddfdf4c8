// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/camilosanz/urna/auth"
	"github.com/camilosanz/urna/db"
	"github.com/camilosanz/urna/models"
)

// maxCredentialAttempts bounds username/token regeneration on collision.
const maxCredentialAttempts = 20

// IssueOutcome is the result for a single roster row: either a freshly
// issued credential or the row-level error that rejected it.
type IssueOutcome struct {
	Row        models.RosterRow
	Credential *models.IssuedCredential
	Err        error
}

// IssueCredentials converts roster rows into student records, yielding
// one outcome per row in input order. Rows are independent: a failed row
// never disturbs credentials already issued for earlier rows, and the
// sequence is lazy, so callers see partial progress as it happens.
// Re-running an import is safe - rows whose doc_id already exists report
// ErrDuplicateStudent instead of issuing twice.
func (e *Election) IssueCredentials(rows []models.RosterRow) iter.Seq2[int, IssueOutcome] {
	return func(yield func(int, IssueOutcome) bool) {
		for i, row := range rows {
			cred, err := e.issueOne(row)
			if !yield(i, IssueOutcome{Row: row, Credential: cred, Err: err}) {
				return
			}
		}
	}
}

func (e *Election) issueOne(row models.RosterRow) (*models.IssuedCredential, error) {
	if err := validateRow(row); err != nil {
		return nil, err
	}

	base := auth.DeriveUsername(row.FullName, row.DocID)

	for attempt := 1; attempt <= maxCredentialAttempts; attempt++ {
		username := auth.WithSuffix(base, attempt)
		token, err := auth.GenerateToken()
		if err != nil {
			return nil, err
		}

		// Insert-if-absent: the UNIQUE constraints on doc_id, username
		// and token are the only uniqueness checks. No read precedes the
		// write, so concurrent imports cannot race past each other.
		_, err = e.db.Exec(`
			INSERT INTO student (id, doc_id, full_name, grade, group_name, username, token, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.NewString(), row.DocID, row.FullName, row.Grade, row.GroupName, username, token, time.Now())

		if err == nil {
			return &models.IssuedCredential{
				DocID:     row.DocID,
				FullName:  row.FullName,
				Grade:     row.Grade,
				GroupName: row.GroupName,
				Username:  username,
				Token:     token,
			}, nil
		}

		if db.IsUniqueViolationOn(err, "doc_id") {
			return nil, ErrDuplicateStudent
		}
		if db.IsUniqueViolation(err) {
			// Username or token collision; regenerate and retry.
			continue
		}
		return nil, fmt.Errorf("failed to insert student: %w", err)
	}

	return nil, ErrCredentialGenerationExhausted
}

func validateRow(row models.RosterRow) error {
	switch {
	case row.DocID == "":
		return fmt.Errorf("%w: doc_id", ErrMissingField)
	case row.FullName == "":
		return fmt.Errorf("%w: full_name", ErrMissingField)
	case row.Grade == "":
		return fmt.Errorf("%w: grade", ErrMissingField)
	case row.GroupName == "":
		return fmt.Errorf("%w: group_name", ErrMissingField)
	}
	return nil
}
