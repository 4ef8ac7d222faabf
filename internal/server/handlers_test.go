package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleHealthRejectsPost(t *testing.T) {
	h := newTestServer(t)

	rec := h.do(httptest.NewRequest(http.MethodPost, "/api/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleVersion(t *testing.T) {
	h := newTestServer(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "build")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)

	rec := h.do(httptest.NewRequest(http.MethodOptions, "/api/teasers", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorrelationIDPropagated(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc12345")
	rec := h.do(req)

	assert.Equal(t, "abc12345", rec.Header().Get("X-Correlation-ID"))
}

func TestCorrelationIDGenerated(t *testing.T) {
	h := newTestServer(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Len(t, rec.Header().Get("X-Correlation-ID"), 8)
}

func TestHandlePurgeReports(t *testing.T) {
	h := newTestServer(t)

	for _, name := range []string{"a.pdf", "b.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(h.config.Reports.Dir, name), []byte("pdf"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(h.config.Reports.Dir, "keep.txt"), []byte("x"), 0644))

	rec := h.do(httptest.NewRequest(http.MethodPost, "/api/admin/purge-reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body["deleted"])

	entries, err := os.ReadDir(h.config.Reports.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep.txt", entries[0].Name())
}

func TestHandlePurgeReportsMissingDir(t *testing.T) {
	h := newTestServer(t)
	h.config.Reports.Dir = filepath.Join(t.TempDir(), "does-not-exist")

	rec := h.do(httptest.NewRequest(http.MethodPost, "/api/admin/purge-reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body["deleted"])
}
