// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/camilosanz/urna/db"
	"github.com/camilosanz/urna/models"
)

// Session is the explicit voting-session value handed back by
// Authenticate and required by CastVote. It carries no transport
// concerns; cookies and headers belong entirely to the web layer.
type Session struct {
	StudentID    string
	Username     string
	FullName     string
	Grade        string
	GroupName    string
	VotedRoles   []string
	PendingRoles []string
	Completed    bool
}

// NextRole is the role the session is currently positioned at, or ""
// once every contested role has been voted.
func (s Session) NextRole() string {
	if len(s.PendingRoles) == 0 {
		return ""
	}
	return s.PendingRoles[0]
}

// CastResult is the outcome of a CastVote call. AlreadyVoted is the
// expected answer to a double login or double submit, not an error.
type CastResult struct {
	Status    string // models.VoteAccepted or models.VoteAlreadyVoted
	Role      string
	NextRole  string
	Completed bool
}

// Authenticate looks up the student holding token and positions the
// session at the first unvoted role. A student who already voted every
// role authenticates into the Completed state - the "you already voted"
// path - with no error. Partial completion resumes where it left off.
func (e *Election) Authenticate(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidToken
	}

	var session Session
	err := e.db.QueryRow(`
		SELECT id, username, full_name, grade, group_name
		FROM student
		WHERE token = $1
	`, token).Scan(&session.StudentID, &session.Username, &session.FullName, &session.Grade, &session.GroupName)

	if err == sql.ErrNoRows {
		return Session{}, ErrInvalidToken
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to query student: %w", err)
	}

	voted, err := votedRoles(e.db, session.StudentID)
	if err != nil {
		return Session{}, err
	}

	for _, role := range e.roles {
		if voted[role] {
			session.VotedRoles = append(session.VotedRoles, role)
		}
	}
	session.PendingRoles = e.pending(voted)
	session.Completed = len(session.PendingRoles) == 0

	return session, nil
}

// CastVote commits one ballot for the session's student. The role must
// be the session's next pending role and the candidate must be
// registered under it. The ledger insert and the completion flag update
// happen in one transaction; the UNIQUE (student_id, role) constraint is
// the authoritative guard, so under concurrent duplicate submissions
// exactly one entry is created and every loser observes AlreadyVoted.
// Safe to retry: a retried committed vote yields AlreadyVoted.
func (e *Election) CastVote(session Session, role, candidateID string) (CastResult, error) {
	if !e.contested(role) {
		return CastResult{}, ErrUnknownRole
	}

	var registered int
	err := e.db.QueryRow(`
		SELECT COUNT(*) FROM candidate WHERE id = $1 AND role = $2
	`, candidateID, role).Scan(&registered)
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to query candidate: %w", err)
	}
	if registered == 0 {
		return CastResult{}, ErrUnknownCandidate
	}

	tx, err := e.db.Begin()
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	voted, err := votedRoles(tx, session.StudentID)
	if err != nil {
		return CastResult{}, err
	}

	if voted[role] {
		return e.alreadyVoted(role, voted), nil
	}

	remaining := e.pending(voted)
	if len(remaining) == 0 {
		return e.alreadyVoted(role, voted), nil
	}
	if remaining[0] != role {
		return CastResult{}, ErrInvalidTransition
	}

	now := time.Now()
	_, err = tx.Exec(`
		INSERT INTO ballot_entry (id, student_id, role, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), session.StudentID, role, candidateID, now)

	if db.IsUniqueViolation(err) {
		// Lost the race to a concurrent submission for the same role.
		// Re-read outside the aborted transaction to report position.
		tx.Rollback()
		voted, rerr := votedRoles(e.db, session.StudentID)
		if rerr != nil {
			return CastResult{}, rerr
		}
		return e.alreadyVoted(role, voted), nil
	}
	if err != nil {
		return CastResult{}, fmt.Errorf("failed to insert ballot entry: %w", err)
	}

	completed := len(remaining) == 1
	if completed {
		_, err = tx.Exec(`
			UPDATE student SET completed_at = $1 WHERE id = $2
		`, now, session.StudentID)
		if err != nil {
			return CastResult{}, fmt.Errorf("failed to mark student completed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return CastResult{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	result := CastResult{
		Status:    models.VoteAccepted,
		Role:      role,
		Completed: completed,
	}
	if !completed {
		result.NextRole = remaining[1]
	}
	return result, nil
}

func (e *Election) alreadyVoted(role string, voted map[string]bool) CastResult {
	remaining := e.pending(voted)
	result := CastResult{
		Status:    models.VoteAlreadyVoted,
		Role:      role,
		Completed: len(remaining) == 0,
	}
	if len(remaining) > 0 {
		result.NextRole = remaining[0]
	}
	return result
}
