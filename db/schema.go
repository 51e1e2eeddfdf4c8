// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The SQL below must run unchanged under both lib/pq and
// modernc.org/sqlite: TEXT keys, explicit timestamps, no NOW().
const schema = `
-- Students (roster store)
CREATE TABLE IF NOT EXISTS student (
    id TEXT PRIMARY KEY,
    doc_id TEXT NOT NULL UNIQUE,
    full_name TEXT NOT NULL,
    grade TEXT NOT NULL,
    group_name TEXT NOT NULL,
    username TEXT NOT NULL UNIQUE,
    token TEXT NOT NULL UNIQUE,
    completed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_student_token ON student(token);
CREATE INDEX IF NOT EXISTS idx_student_username ON student(username);

-- Candidates (registry)
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    grade TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL,
    proposal TEXT NOT NULL DEFAULT '',
    photo_ref TEXT NOT NULL DEFAULT '',
    running_mate_name TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidate_role ON candidate(role);

-- Ballot ledger (append-only). The UNIQUE (student_id, role) constraint
-- is the atomic compare-and-insert that makes double voting impossible.
CREATE TABLE IF NOT EXISTS ballot_entry (
    id TEXT PRIMARY KEY,
    student_id TEXT NOT NULL REFERENCES student(id),
    role TEXT NOT NULL,
    candidate_id TEXT NOT NULL REFERENCES candidate(id),
    cast_at TIMESTAMP NOT NULL,
    UNIQUE (student_id, role)
);

CREATE INDEX IF NOT EXISTS idx_ballot_entry_role ON ballot_entry(role);
CREATE INDEX IF NOT EXISTS idx_ballot_entry_candidate ON ballot_entry(candidate_id);
`
