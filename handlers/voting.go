// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/camilosanz/urna/cliparse"
	"github.com/camilosanz/urna/election"
	"github.com/camilosanz/urna/middleware"
	"github.com/camilosanz/urna/models"
)

type VotingHandler struct {
	election *election.Election
	cfg      cliparse.Config
}

func NewVotingHandler(e *election.Election, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{election: e, cfg: cfg}
}

// ListCandidates handles GET /candidates/{role}
// Public: the ballot screen needs the registry for the role being voted.
func (h *VotingHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")

	candidates, err := h.election.CandidatesByRole(role)
	if errors.Is(err, election.ErrUnknownRole) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Role is not contested in this election")
		return
	}
	if err != nil {
		slog.Error("failed to list candidates", "error", err, "role", role)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Authenticate handles POST /session
// Exchanges a voting token for a session positioned at the first unvoted
// role. A fully completed student lands in the already_voted outcome;
// that is the expected answer to a second login, not an error.
func (h *VotingHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req models.AuthenticateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	session, err := h.election.Authenticate(req.Token)
	if errors.Is(err, election.ErrInvalidToken) {
		// Generic message: never hint whether the token exists.
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credential")
		return
	}
	if err != nil {
		slog.Error("failed to authenticate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.AuthenticateResponse{
		Status:       models.SessionAuthenticated,
		Username:     session.Username,
		FullName:     session.FullName,
		Grade:        session.Grade,
		GroupName:    session.GroupName,
		NextRole:     session.NextRole(),
		PendingRoles: session.PendingRoles,
	}
	if session.Completed {
		resp.Status = models.SessionAlreadyVoted
	}

	slog.Info("session opened", "username", session.Username, "status", resp.Status)

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CastVote handles POST /votes
// The voting token travels in the X-Voter-Token header; the body names
// the role and candidate. Duplicate submissions - double clicks, network
// retries, a second device - resolve to already_voted, never to a second
// ballot.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Voter-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Role == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role is required")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	session, err := h.election.Authenticate(token)
	if errors.Is(err, election.ErrInvalidToken) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credential")
		return
	}
	if err != nil {
		slog.Error("failed to authenticate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	result, err := h.election.CastVote(session, req.Role, req.CandidateID)
	switch {
	case errors.Is(err, election.ErrUnknownRole):
		middleware.ErrorResponse(w, http.StatusNotFound, "Role is not contested in this election")
		return
	case errors.Is(err, election.ErrUnknownCandidate):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Candidate is not registered for this role")
		return
	case errors.Is(err, election.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, "Role is not pending for this session")
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err, "role", req.Role)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	resp := models.CastVoteResponse{
		Status:    result.Status,
		Role:      result.Role,
		NextRole:  result.NextRole,
		Completed: result.Completed,
	}

	if result.Status == models.VoteAccepted {
		slog.Info("vote recorded", "username", session.Username, "role", result.Role, "completed", result.Completed)
		middleware.JSONResponse(w, http.StatusCreated, resp)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
