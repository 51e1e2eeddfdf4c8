// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/camilosanz/urna/cliparse"
	"github.com/camilosanz/urna/election"
	"github.com/camilosanz/urna/handlers"
	"github.com/camilosanz/urna/middleware"
)

func NewRouter(e *election.Election, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(e, cfg)
	votingHandler := handlers.NewVotingHandler(e, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election administration (requires X-Admin-Key)
	mux.HandleFunc("POST /admin/candidates", middleware.WithLogging(adminHandler.RegisterCandidate))
	mux.HandleFunc("GET /admin/candidates", middleware.WithLogging(adminHandler.ListCandidates))
	mux.HandleFunc("POST /admin/students/import", middleware.WithLogging(adminHandler.ImportStudents))
	mux.HandleFunc("GET /admin/students", middleware.WithLogging(adminHandler.ListStudents))
	mux.HandleFunc("DELETE /admin/students/{id}", middleware.WithLogging(adminHandler.RemoveStudent))
	mux.HandleFunc("GET /admin/credentials", middleware.WithLogging(adminHandler.ExportCredentials))
	mux.HandleFunc("GET /admin/summary", middleware.WithLogging(adminHandler.Summary))
	mux.HandleFunc("GET /admin/results", middleware.WithLogging(adminHandler.Results))
	mux.HandleFunc("GET /admin/results/{role}", middleware.WithLogging(adminHandler.ResultForRole))

	// Voting operations (public)
	mux.HandleFunc("GET /candidates/{role}", middleware.WithLogging(votingHandler.ListCandidates))
	mux.HandleFunc("POST /session", middleware.WithLogging(votingHandler.Authenticate))
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.CastVote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("urna API v1"))
	})

	return mux
}
