// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP adapters over the election core.

# Handler Types

  - AdminHandler: candidate registration, roster import, credential
    export, student removal, summary and results
  - VotingHandler: candidate listing, authentication, vote casting

Handlers are created via constructors that accept the election context
and config:

	adminHandler := handlers.NewAdminHandler(elec, cfg)

# Admin Operations

All /admin routes require the X-Admin-Key header.

# Voting Flow

	POST /session  → Authenticate (body: {token})
	POST /votes    → CastVote (X-Voter-Token header + {role, candidate_id})

Authenticate returns the session's position (next_role, pending_roles);
a completed student gets status "already_voted" with HTTP 200 - the
normal answer to a second login, not an error. CastVote returns 201 for
an accepted ballot, 200 with status "already_voted" for a duplicate,
409 for an out-of-order role and 422 for an unknown candidate.
*/
package handlers
