// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"fmt"
	"slices"
)

// Election is the explicit context for every core operation: the shared
// store plus the contested roles in voting order. There is no ambient
// election state anywhere else.
type Election struct {
	db    *sql.DB
	roles []string
}

func New(db *sql.DB, roles []string) *Election {
	return &Election{db: db, roles: slices.Clone(roles)}
}

// Roles returns the contested roles in voting order.
func (e *Election) Roles() []string {
	return slices.Clone(e.roles)
}

func (e *Election) contested(role string) bool {
	return slices.Contains(e.roles, role)
}

// querier abstracts *sql.DB and *sql.Tx so read helpers work inside and
// outside transactions.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// votedRoles returns the set of roles the student has committed ballots
// for, read straight from the ledger. Vote status is always derived from
// ballot entries, never stored separately, so the per-role counts can
// never drift from the ledger.
func votedRoles(q querier, studentID string) (map[string]bool, error) {
	rows, err := q.Query(`
		SELECT role FROM ballot_entry WHERE student_id = $1
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voted roles: %w", err)
	}
	defer rows.Close()

	voted := make(map[string]bool)
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("failed to scan voted role: %w", err)
		}
		voted[role] = true
	}

	return voted, rows.Err()
}

// pending returns the roles not yet voted, preserving voting order.
func (e *Election) pending(voted map[string]bool) []string {
	remaining := make([]string, 0, len(e.roles))
	for _, role := range e.roles {
		if !voted[role] {
			remaining = append(remaining, role)
		}
	}
	return remaining
}
