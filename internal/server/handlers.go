package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ateger/teaserai/internal/common"
)

// handleHealth responds to GET/HEAD /api/health with {"status":"ok"}.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET/HEAD /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handlePurgeReports handles POST /api/admin/purge-reports: deletes all
// generated report PDFs from the reports directory.
func (s *Server) handlePurgeReports(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	entries, err := os.ReadDir(s.config.Reports.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			WriteJSON(w, http.StatusOK, map[string]int{"deleted": 0})
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to read reports directory")
		return
	}

	deleted := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pdf") {
			continue
		}
		if err := os.Remove(filepath.Join(s.config.Reports.Dir, e.Name())); err != nil {
			s.logger.Warn().Err(err).Str("file", e.Name()).Msg("Failed to delete report")
			continue
		}
		deleted++
	}

	s.logger.Info().Int("deleted", deleted).Msg("Reports purged")
	WriteJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
