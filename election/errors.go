// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken deliberately carries no detail: the login surface
	// must not reveal whether a token is unknown or merely malformed.
	ErrInvalidToken = errors.New("invalid credential")

	// ErrInvalidTransition means a vote was attempted for a role that is
	// not the session's next pending role.
	ErrInvalidTransition = errors.New("role is not pending for this session")

	// ErrUnknownCandidate means the candidate id is not registered under
	// the requested role.
	ErrUnknownCandidate = errors.New("candidate is not registered for this role")

	// ErrUnknownRole means the role is not contested in this election.
	ErrUnknownRole = errors.New("role is not contested in this election")

	// ErrCredentialGenerationExhausted means uniqueness retries ran out
	// while issuing a credential. Fatal for that roster row only.
	ErrCredentialGenerationExhausted = errors.New("exhausted attempts to generate a unique credential")

	// ErrMissingField marks a roster row missing one of the four
	// required columns.
	ErrMissingField = errors.New("missing required field")

	// ErrDuplicateStudent marks a roster row whose doc_id is already
	// registered.
	ErrDuplicateStudent = errors.New("student is already registered")

	// ErrStudentNotFound is returned by roster lookups and removal.
	ErrStudentNotFound = errors.New("student not found")

	// ErrStudentHasBallots blocks removal of a student with committed
	// votes; deleting them would break ledger reconciliation.
	ErrStudentHasBallots = errors.New("student has ballots in the ledger")
)

// TallyIntegrityError reports a ledger inconsistency detected at read
// time: the per-candidate counts for a role do not add up to the number
// of students who voted that role. It is an operational incident, not a
// user-facing condition - automated result publication must halt until
// an administrator resolves it.
type TallyIntegrityError struct {
	Role         string
	CandidateSum int
	VotedCount   int
}

func (e *TallyIntegrityError) Error() string {
	return fmt.Sprintf("tally integrity violation for %s: candidate counts sum to %d but %d students voted",
		e.Role, e.CandidateSum, e.VotedCount)
}
