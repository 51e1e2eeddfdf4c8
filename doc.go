// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the urna election server.

Urna runs student-council elections (Personero, Contralor, or any
configured set of roles): administrators register candidates and import
the eligible roster, every student receives a unique login credential,
and each student votes at most once per contested role.

# Starting the Server

The server runs against SQLite by default (one school, one file):

	ADMIN_KEY=secret go run main.go

Or against PostgreSQL:

	ADMIN_KEY=secret DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

# Configuration

Required settings:

  - ADMIN_KEY (-admin-key): Key for the administration endpoints

Optional settings:

  - PORT (-p): Server port (default: 5001)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - DATABASE_URL (-d): Connection string (default: file:election.db)
  - ELECTION_ROLES (-roles): Contested roles in voting order
    (default: "Personero,Contralor")

A .env file in the working directory is loaded if present.

# Architecture

The election core is isolated from the HTTP surface:

  - election: credential issuance, the voting state machine, tallying
  - handlers: HTTP adapters (admin operations, voting operations)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Token generation and username derivation
  - db: Schema creation and driver helpers
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
