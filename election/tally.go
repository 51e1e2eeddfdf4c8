// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"math"

	"github.com/camilosanz/urna/models"
)

// Tally aggregates the ledger for one contested role: per-candidate
// counts (zero-vote candidates included), the number of distinct voters,
// and the eligible roster size. Computed on demand from the live ledger;
// nothing is cached, so a result can never go stale. Before returning,
// the counts are reconciled against the voter count and any mismatch is
// surfaced as a *TallyIntegrityError.
func (e *Election) Tally(role string) (models.Tally, error) {
	if !e.contested(role) {
		return models.Tally{}, ErrUnknownRole
	}

	// The per-candidate counts and the distinct-voter count must come
	// from one snapshot: read in separate statements, a vote committing
	// in between fails the reconciliation check on a healthy ledger.
	// A single statement sees a single snapshot under both drivers.
	rows, err := e.db.Query(`
		SELECT c.id, c.display_name, c.running_mate_name, COUNT(b.id) AS votes,
		       (SELECT COUNT(DISTINCT student_id) FROM ballot_entry WHERE role = $1) AS voted
		FROM candidate c
		LEFT JOIN ballot_entry b ON b.candidate_id = c.id AND b.role = c.role
		WHERE c.role = $1
		GROUP BY c.id, c.display_name, c.running_mate_name
		ORDER BY votes DESC, c.display_name ASC
	`, role)
	if err != nil {
		return models.Tally{}, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	tally := models.Tally{Role: role, Candidates: []models.CandidateCount{}}
	sum := 0
	for rows.Next() {
		var count models.CandidateCount
		if err := rows.Scan(&count.CandidateID, &count.DisplayName, &count.RunningMateName,
			&count.Votes, &tally.VotedCount); err != nil {
			return models.Tally{}, fmt.Errorf("failed to scan tally row: %w", err)
		}
		sum += count.Votes
		tally.Candidates = append(tally.Candidates, count)
	}
	if err := rows.Err(); err != nil {
		return models.Tally{}, fmt.Errorf("failed to read tally rows: %w", err)
	}

	if len(tally.Candidates) == 0 {
		// No candidate rows carried the voter count. With an empty
		// registry no valid vote can exist for the role, so any
		// nonzero count read here is a genuine inconsistency, not a
		// snapshot artifact.
		err = e.db.QueryRow(`
			SELECT COUNT(DISTINCT student_id) FROM ballot_entry WHERE role = $1
		`, role).Scan(&tally.VotedCount)
		if err != nil {
			return models.Tally{}, fmt.Errorf("failed to count voters: %w", err)
		}
	}

	err = e.db.QueryRow(`SELECT COUNT(*) FROM student`).Scan(&tally.EligibleCount)
	if err != nil {
		return models.Tally{}, fmt.Errorf("failed to count eligible students: %w", err)
	}

	// Self-check: a mismatch means the ledger references candidates
	// outside the role's registry, or worse. Never return it silently.
	if sum != tally.VotedCount {
		return models.Tally{}, &TallyIntegrityError{
			Role:         role,
			CandidateSum: sum,
			VotedCount:   tally.VotedCount,
		}
	}

	if tally.EligibleCount > 0 {
		turnout := float64(tally.VotedCount) / float64(tally.EligibleCount) * 100
		tally.Turnout = math.Round(turnout*100) / 100
	}

	return tally, nil
}

// Summary reports the admin dashboard counters: roster size, students
// who completed every role, and registered candidates.
func (e *Election) Summary() (models.SummaryResponse, error) {
	summary := models.SummaryResponse{Roles: e.Roles()}

	err := e.db.QueryRow(`SELECT COUNT(*) FROM student`).Scan(&summary.Students)
	if err != nil {
		return models.SummaryResponse{}, fmt.Errorf("failed to count students: %w", err)
	}

	err = e.db.QueryRow(`SELECT COUNT(*) FROM student WHERE completed_at IS NOT NULL`).Scan(&summary.Completed)
	if err != nil {
		return models.SummaryResponse{}, fmt.Errorf("failed to count completed students: %w", err)
	}

	err = e.db.QueryRow(`SELECT COUNT(*) FROM candidate`).Scan(&summary.Candidates)
	if err != nil {
		return models.SummaryResponse{}, fmt.Errorf("failed to count candidates: %w", err)
	}

	return summary, nil
}
