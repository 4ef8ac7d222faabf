package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/api/auth/token", s.handleAuthToken)

	// Teasers
	mux.HandleFunc("/api/teasers/", s.routeTeasers)
	mux.HandleFunc("/api/teasers", s.handleTeasers)

	// Admin
	mux.HandleFunc("/api/admin/purge-reports", s.handlePurgeReports)
}
