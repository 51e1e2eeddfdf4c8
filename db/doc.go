// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Drivers

Open supports two database types:

	conn, err := db.Open("sqlite", "file:election.db")
	conn, err := db.Open("postgres", "postgres://...")

SQLite (modernc.org/sqlite, CGo-free) is the single-school default;
PostgreSQL (lib/pq) suits hosted deployments. All SQL in this module is
written to run unchanged under both.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes.

# Tables

  - student: the roster store, one row per eligible student with the
    issued username/token and completion timestamp
  - candidate: the registry, one row per candidate per contested role
  - ballot_entry: the append-only ballot ledger

The UNIQUE (student_id, role) constraint on ballot_entry is the atomic
compare-and-insert that makes double voting impossible; unique username,
token and doc_id constraints on student back credential issuance.

# Unique Violations

IsUniqueViolation and IsUniqueViolationOn recognize unique-constraint
errors from both drivers, which report them as differently formatted
plain errors.
*/
package db
