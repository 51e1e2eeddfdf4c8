// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/camilosanz/urna/election"
	"github.com/camilosanz/urna/testutil"
)

func setupRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })
	cfg := testutil.GetTestConfig()
	return NewRouter(election.New(conn, cfg.Roles), cfg)
}

func TestHealthEndpoint(t *testing.T) {
	mux := setupRouter(t)

	req := testutil.MakeRequest("GET", "/health", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected OK body, got %q", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := setupRouter(t)

	req := testutil.MakeRequest("GET", "/", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestRouteMethodMatching(t *testing.T) {
	mux := setupRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"session rejects DELETE", "DELETE", "/session", http.StatusMethodNotAllowed},
		{"votes rejects PUT", "PUT", "/votes", http.StatusMethodNotAllowed},
		{"students rejects POST", "POST", "/admin/students", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest(tt.method, tt.path, nil, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestAdminRoutesRequireKey(t *testing.T) {
	mux := setupRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/admin/candidates"},
		{"GET", "/admin/students"},
		{"GET", "/admin/credentials"},
		{"GET", "/admin/summary"},
		{"GET", "/admin/results"},
		{"GET", "/admin/results/Personero"},
		{"DELETE", "/admin/students/some-id"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			req := testutil.MakeRequest(p.method, p.path, nil, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestPublicRoutesNeedNoKey(t *testing.T) {
	mux := setupRouter(t)

	req := testutil.MakeRequest("GET", "/candidates/Personero", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}
