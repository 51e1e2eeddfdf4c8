// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5001)
  - DatabaseType: "sqlite" (default) or "postgres"
  - DatabaseURL: Connection string (default: file:election.db for sqlite)
  - AdminKey: Key for the administration endpoints (required)
  - Roles: Contested roles in voting order (default: Personero,Contralor)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_TYPE  → -t
	DATABASE_URL   → -d
	ELECTION_ROLES → -roles
	ADMIN_KEY      → -admin-key

CLI flags take precedence over environment variables.

The role order matters: it is the fixed order the voting state machine
walks for every student.
*/
package cliparse
