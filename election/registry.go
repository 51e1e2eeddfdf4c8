// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/camilosanz/urna/models"
)

// RegisterCandidate adds a candidate under a contested role. Votes only
// ever reference candidates through this registry, so CastVote rejects
// any candidate id not present here for the requested role.
func (e *Election) RegisterCandidate(req models.RegisterCandidateRequest) (models.Candidate, error) {
	if !e.contested(req.Role) {
		return models.Candidate{}, ErrUnknownRole
	}

	candidate := models.Candidate{
		ID:              uuid.NewString(),
		DisplayName:     req.DisplayName,
		Grade:           req.Grade,
		Role:            req.Role,
		Proposal:        req.Proposal,
		PhotoRef:        req.PhotoRef,
		RunningMateName: req.RunningMateName,
		CreatedAt:       time.Now(),
	}

	_, err := e.db.Exec(`
		INSERT INTO candidate (id, display_name, grade, role, proposal, photo_ref, running_mate_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, candidate.ID, candidate.DisplayName, candidate.Grade, candidate.Role,
		candidate.Proposal, candidate.PhotoRef, candidate.RunningMateName, candidate.CreatedAt)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to insert candidate: %w", err)
	}

	return candidate, nil
}

// CandidatesByRole lists the registry for one role, for the ballot
// screen. Fails with ErrUnknownRole for roles not contested here.
func (e *Election) CandidatesByRole(role string) ([]models.Candidate, error) {
	if !e.contested(role) {
		return nil, ErrUnknownRole
	}
	return e.queryCandidates(`
		SELECT id, display_name, grade, role, proposal, photo_ref, running_mate_name, created_at
		FROM candidate
		WHERE role = $1
		ORDER BY display_name
	`, role)
}

// AllCandidates lists every registered candidate grouped by role.
func (e *Election) AllCandidates() ([]models.Candidate, error) {
	return e.queryCandidates(`
		SELECT id, display_name, grade, role, proposal, photo_ref, running_mate_name, created_at
		FROM candidate
		ORDER BY role, display_name
	`)
}

func (e *Election) queryCandidates(query string, args ...any) ([]models.Candidate, error) {
	rows, err := e.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.DisplayName, &c.Grade, &c.Role,
			&c.Proposal, &c.PhotoRef, &c.RunningMateName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}
