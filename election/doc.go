// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the ballot-integrity core: credential
issuance, the single-use voting state machine, and the tally engine.

# Election Context

Every operation runs against an explicit Election value holding the
store and the contested roles in voting order. There is no global
election state:

	elec := election.New(db, []string{"Personero", "Contralor"})

# Credential Issuance

IssueCredentials converts validated roster rows into students with a
generated username and an opaque voting token, yielding one outcome per
row:

	for i, outcome := range elec.IssueCredentials(rows) {
		...
	}

Uniqueness of doc_id, username and token is enforced by insert-if-absent
against the store's unique constraints, with bounded regeneration on
collision. A failed row never disturbs earlier rows.

# Voting State Machine

A session walks the contested roles in fixed order:

	Unauthenticated → Authenticated → VotingRole(R1) → ... → Completed

Authenticate exchanges a token for a Session positioned at the first
unvoted role; partial completion resumes there on the next login.
CastVote commits one ballot atomically - the ledger's UNIQUE
(student_id, role) constraint is the only guard against double voting,
so concurrent duplicate submissions leave exactly one entry and every
loser observes the AlreadyVoted outcome. Committed votes are never
edited or withdrawn.

# Tallying

Tally(role) aggregates the ledger on demand: per-candidate counts,
distinct voters, eligible roster size. The counts are reconciled against
the voter count before they are returned; a mismatch is reported as
*TallyIntegrityError and must be treated as an operational incident.

# Errors

AlreadyVoted is not an error - it is the expected outcome of a double
login or double submit and is reported through statuses on Session and
CastResult. The sentinel errors (ErrInvalidToken, ErrInvalidTransition,
ErrUnknownCandidate, ...) cover the genuine failure modes.
*/
package election
