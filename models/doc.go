// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Student: roster entry with issued credential and completion state
  - Candidate: registry entry under one contested role
  - BallotEntry: one committed vote in the append-only ledger
  - Tally: per-candidate counts plus participation for one role

The Student token field is tagged `json:"-"`; it only leaves the server
through the dedicated credential export.

# Constants

Session statuses:

	SessionAuthenticated = "authenticated"
	SessionAlreadyVoted  = "already_voted"

Vote outcomes:

	VoteAccepted     = "accepted"
	VoteAlreadyVoted = "already_voted"

Default roles:

	RolePersonero = "Personero"
	RoleContralor = "Contralor"
*/
package models
