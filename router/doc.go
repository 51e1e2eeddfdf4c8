// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the urna API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(elec, cfg)

# Endpoints

Health:

	GET /health

Administration (requires X-Admin-Key):

	POST   /admin/candidates        - Register candidate
	GET    /admin/candidates        - List all candidates
	POST   /admin/students/import   - Import roster rows
	GET    /admin/students          - List roster
	DELETE /admin/students/{id}     - Remove student (no ballots only)
	GET    /admin/credentials       - Export issued credentials
	GET    /admin/summary           - Roster/participation counters
	GET    /admin/results           - Tallies for every role
	GET    /admin/results/{role}    - Tally for one role

Voting (public):

	GET  /candidates/{role} - Ballot-screen candidate list
	POST /session           - Authenticate with voting token
	POST /votes             - Cast one ballot (X-Voter-Token)
*/
package router
