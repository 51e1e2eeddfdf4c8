// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/camilosanz/urna/auth"
	"github.com/camilosanz/urna/cliparse"
	"github.com/camilosanz/urna/election"
	"github.com/camilosanz/urna/middleware"
	"github.com/camilosanz/urna/models"
)

type AdminHandler struct {
	election *election.Election
	cfg      cliparse.Config
}

func NewAdminHandler(e *election.Election, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{election: e, cfg: cfg}
}

func (h *AdminHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// RegisterCandidate handles POST /admin/candidates
func (h *AdminHandler) RegisterCandidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req models.RegisterCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DisplayName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name is required")
		return
	}
	if req.Role == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role is required")
		return
	}

	candidate, err := h.election.RegisterCandidate(req)
	if errors.Is(err, election.ErrUnknownRole) {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Role is not contested in this election")
		return
	}
	if err != nil {
		slog.Error("failed to register candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register candidate")
		return
	}

	slog.Info("candidate registered", "candidate_id", candidate.ID, "role", candidate.Role)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterCandidateResponse{
		Candidate: candidate,
	})
}

// ListCandidates handles GET /admin/candidates
func (h *AdminHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	candidates, err := h.election.AllCandidates()
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// ImportStudents handles POST /admin/students/import
// Each roster row is issued independently; the response reports every
// per-row outcome so partial success is visible and actionable.
func (h *AdminHandler) ImportStudents(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req models.ImportStudentsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Rows) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "rows cannot be empty")
		return
	}

	report := models.ImportReport{
		Total:  len(req.Rows),
		Issued: []models.IssuedCredential{},
		Failed: []models.RowError{},
	}

	for i, outcome := range h.election.IssueCredentials(req.Rows) {
		if outcome.Err != nil {
			report.Failed = append(report.Failed, models.RowError{
				RowIndex: i,
				DocID:    outcome.Row.DocID,
				Reason:   outcome.Err.Error(),
			})
			continue
		}
		report.Issued = append(report.Issued, *outcome.Credential)
	}

	slog.Info("roster import finished",
		"issued", humanize.Comma(int64(len(report.Issued))),
		"failed", len(report.Failed),
	)

	middleware.JSONResponse(w, http.StatusOK, report)
}

// ListStudents handles GET /admin/students
func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	students, err := h.election.Students()
	if err != nil {
		slog.Error("failed to list students", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, students)
}

// ExportCredentials handles GET /admin/credentials
// Returns the {username, token} payloads the QR/certificate renderer
// consumes. Tokens are exposed nowhere else.
func (h *AdminHandler) ExportCredentials(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	credentials, err := h.election.Credentials()
	if err != nil {
		slog.Error("failed to export credentials", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, credentials)
}

// RemoveStudent handles DELETE /admin/students/{id}
func (h *AdminHandler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	studentID := r.PathValue("id")
	if studentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student id is required")
		return
	}

	err := h.election.RemoveStudent(studentID)
	if errors.Is(err, election.ErrStudentNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Student not found")
		return
	}
	if errors.Is(err, election.ErrStudentHasBallots) {
		middleware.ErrorResponse(w, http.StatusConflict, "Student has already voted and cannot be removed")
		return
	}
	if err != nil {
		slog.Error("failed to remove student", "error", err, "student_id", studentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove student")
		return
	}

	slog.Info("student removed", "student_id", studentID)
	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /admin/summary
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	summary, err := h.election.Summary()
	if err != nil {
		slog.Error("failed to build summary", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summary)
}

// Results handles GET /admin/results
func (h *AdminHandler) Results(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	results := models.ResultsResponse{Results: []models.Tally{}}
	for _, role := range h.election.Roles() {
		tally, err := h.election.Tally(role)
		if err != nil {
			h.tallyError(w, role, err)
			return
		}
		results.Results = append(results.Results, tally)
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// ResultForRole handles GET /admin/results/{role}
func (h *AdminHandler) ResultForRole(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	role := r.PathValue("role")
	tally, err := h.election.Tally(role)
	if errors.Is(err, election.ErrUnknownRole) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Role is not contested in this election")
		return
	}
	if err != nil {
		h.tallyError(w, role, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally)
}

func (h *AdminHandler) tallyError(w http.ResponseWriter, role string, err error) {
	var integrity *election.TallyIntegrityError
	if errors.As(err, &integrity) {
		// Operational incident: result publication must halt until an
		// administrator resolves the ledger.
		slog.Error("tally integrity violation", "role", integrity.Role,
			"candidate_sum", integrity.CandidateSum, "voted_count", integrity.VotedCount)
		middleware.ErrorResponse(w, http.StatusInternalServerError, integrity.Error())
		return
	}
	slog.Error("failed to compute tally", "error", err, "role", role)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}
