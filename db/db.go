// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Open connects to the configured store. Supported types are "sqlite"
// (modernc.org/sqlite, the single-school default) and "postgres".
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	var driver string
	switch databaseType {
	case "sqlite":
		driver = "sqlite"
	case "postgres":
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}

	// modernc.org/sqlite leaves foreign_keys off unless the DSN asks
	// for it; the REFERENCES clauses in the schema are only enforced
	// with the pragma set on every connection.
	if driver == "sqlite" {
		sep := "?"
		if strings.Contains(databaseURL, "?") {
			sep = "&"
		}
		databaseURL += sep + "_pragma=foreign_keys(1)"
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; funneling through one connection
	// avoids SQLITE_BUSY under concurrent handlers.
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	return conn, nil
}

// IsUniqueViolation reports whether err is a unique-constraint violation
// from either supported driver. Neither lib/pq nor modernc.org/sqlite
// exposes a shared error type, so this matches the driver messages.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// IsUniqueViolationOn reports whether err is a unique violation naming
// the given column. SQLite reports "table.column", Postgres reports the
// generated constraint name "table_column_key"; both contain the column.
func IsUniqueViolationOn(err error, column string) bool {
	return IsUniqueViolation(err) && strings.Contains(err.Error(), column)
}
