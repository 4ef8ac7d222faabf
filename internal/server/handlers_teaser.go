package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/ateger/teaserai/internal/models"
)

// maxUploadBytes limits uploaded teaser PDFs.
const maxUploadBytes = 25 << 20 // 25MB

// TeaserListResponse wraps the teaser list.
type TeaserListResponse struct {
	Teasers []*models.Teaser `json:"teasers"`
}

// ProcessRequest selects which analysis sections to generate.
type ProcessRequest struct {
	BuildingBlocks []string `json:"building_blocks"`
}

// handleTeasers routes /api/teasers: POST uploads, GET lists.
func (s *Server) handleTeasers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleTeaserUpload(w, r)
	case http.MethodGet:
		s.handleTeaserList(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeTeasers dispatches /api/teasers/{id} and its sub-resources.
func (s *Server) routeTeasers(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/teasers/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Teaser ID is required")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/teasers/"+id)
	switch rest {
	case "", "/":
		switch r.Method {
		case http.MethodGet:
			s.handleTeaserGet(w, r, id)
		case http.MethodDelete:
			s.handleTeaserDelete(w, r, id)
		default:
			RequireMethod(w, r, http.MethodGet, http.MethodDelete)
		}
	case "/report":
		s.handleTeaserReport(w, r, id)
	case "/process":
		s.handleTeaserProcess(w, r, id)
	case "/cancel":
		s.handleTeaserCancel(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// handleTeaserUpload handles POST /api/teasers: a multipart PDF upload.
// The upload is stored, a pending teaser record is created, and the
// processing pipeline starts in the background.
func (s *Server) handleTeaserUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Multipart field 'file' is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		WriteError(w, http.StatusBadRequest, "File must be a PDF")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	teaser := &models.Teaser{
		ID:       uuid.New().String(),
		Filename: header.Filename,
		Status:   models.TeaserStatusProcessing,
	}

	if _, err := s.storage.DocumentStore().SaveUpload(teaser.ID, teaser.Filename, content); err != nil {
		s.logger.Error().Err(err).Msg("Failed to store upload")
		WriteError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}

	if err := s.storage.TeaserStore().SaveTeaser(r.Context(), teaser); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save teaser")
		WriteError(w, http.StatusInternalServerError, "Failed to save teaser")
		return
	}

	s.pipeline.Start(teaser.ID, nil)

	s.logger.Info().
		Str("teaser", teaser.ID).
		Str("filename", teaser.Filename).
		Int("size", len(content)).
		Msg("Teaser uploaded")
	WriteJSON(w, http.StatusCreated, teaser)
}

// handleTeaserList handles GET /api/teasers.
func (s *Server) handleTeaserList(w http.ResponseWriter, r *http.Request) {
	teasers, err := s.storage.TeaserStore().ListTeasers(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list teasers")
		return
	}
	if teasers == nil {
		teasers = []*models.Teaser{}
	}
	WriteJSON(w, http.StatusOK, TeaserListResponse{Teasers: teasers})
}

// handleTeaserGet handles GET /api/teasers/{id}.
func (s *Server) handleTeaserGet(w http.ResponseWriter, r *http.Request, id string) {
	teaser, err := s.storage.TeaserStore().GetTeaser(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Teaser not found")
		return
	}
	WriteJSON(w, http.StatusOK, teaser)
}

// handleTeaserDelete handles DELETE /api/teasers/{id}: removes the record,
// the stored upload, and the generated report file if present.
func (s *Server) handleTeaserDelete(w http.ResponseWriter, r *http.Request, id string) {
	teaser, err := s.storage.TeaserStore().GetTeaser(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Teaser not found")
		return
	}

	if teaser.ReportPath != "" {
		if err := os.Remove(teaser.ReportPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", teaser.ReportPath).Msg("Failed to delete report file")
		}
	}

	if err := s.storage.DocumentStore().DeleteUpload(id); err != nil {
		s.logger.Warn().Err(err).Str("teaser", id).Msg("Failed to delete upload")
	}

	if err := s.storage.TeaserStore().DeleteTeaser(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to delete teaser")
		return
	}

	s.logger.Info().Str("teaser", id).Msg("Teaser deleted")
	w.WriteHeader(http.StatusNoContent)
}

// handleTeaserReport handles GET /api/teasers/{id}/report: downloads the
// generated screening report PDF.
func (s *Server) handleTeaserReport(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	teaser, err := s.storage.TeaserStore().GetTeaser(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Teaser not found")
		return
	}

	if teaser.Status != models.TeaserStatusCompleted || teaser.ReportPath == "" {
		WriteError(w, http.StatusNotFound, "Report not yet available")
		return
	}

	if _, err := os.Stat(teaser.ReportPath); err != nil {
		WriteError(w, http.StatusNotFound, "Report file not found")
		return
	}

	downloadName := strings.TrimSuffix(teaser.Filename, ".pdf") + "_report.pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	http.ServeFile(w, r, teaser.ReportPath)
}

// handleTeaserProcess handles POST /api/teasers/{id}/process: starts the
// pipeline with optionally selected building blocks. A teaser already being
// processed is returned as-is rather than rejected.
func (s *Server) handleTeaserProcess(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ProcessRequest
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}

	teaser, err := s.storage.TeaserStore().GetTeaser(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Teaser not found")
		return
	}

	if teaser.Status == models.TeaserStatusProcessing {
		WriteJSON(w, http.StatusOK, teaser)
		return
	}

	if err := s.storage.TeaserStore().UpdateStatus(r.Context(), id, models.TeaserStatusProcessing, ""); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	teaser.Status = models.TeaserStatusProcessing
	teaser.Error = ""

	s.pipeline.Start(id, req.BuildingBlocks)

	WriteJSON(w, http.StatusOK, teaser)
}

// handleTeaserCancel handles POST /api/teasers/{id}/cancel.
func (s *Server) handleTeaserCancel(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	teaser, err := s.storage.TeaserStore().GetTeaser(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Teaser not found")
		return
	}

	if teaser.Status != models.TeaserStatusProcessing {
		WriteError(w, http.StatusBadRequest, "Only processing teasers can be canceled")
		return
	}

	s.pipeline.Cancel(id)

	if err := s.storage.TeaserStore().UpdateStatus(r.Context(), id, models.TeaserStatusError, "canceled"); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	teaser.Status = models.TeaserStatusError
	teaser.Error = "canceled"

	s.logger.Info().Str("teaser", id).Msg("Processing canceled via API")
	WriteJSON(w, http.StatusOK, teaser)
}
