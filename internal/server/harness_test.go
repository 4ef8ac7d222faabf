package server

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ateger/teaserai/internal/common"
	"github.com/ateger/teaserai/internal/interfaces"
	"github.com/ateger/teaserai/internal/models"
)

// --- mocks shared by the handler tests ---

type fakeTeaserStore struct {
	mu      sync.Mutex
	teasers map[string]*models.Teaser
}

func newFakeTeaserStore() *fakeTeaserStore {
	return &fakeTeaserStore{teasers: make(map[string]*models.Teaser)}
}

func (f *fakeTeaserStore) SaveTeaser(_ context.Context, t *models.Teaser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *t
	f.teasers[t.ID] = &copied
	return nil
}

func (f *fakeTeaserStore) GetTeaser(_ context.Context, id string) (*models.Teaser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.teasers[id]
	if !ok {
		return nil, fmt.Errorf("teaser '%s' not found", id)
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTeaserStore) ListTeasers(_ context.Context) ([]*models.Teaser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Teaser
	for _, t := range f.teasers {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTeaserStore) DeleteTeaser(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.teasers[id]; !ok {
		return fmt.Errorf("teaser '%s' not found", id)
	}
	delete(f.teasers, id)
	return nil
}

func (f *fakeTeaserStore) UpdateStatus(_ context.Context, id string, status models.TeaserStatus, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.teasers[id]
	if !ok {
		return fmt.Errorf("teaser '%s' not found", id)
	}
	t.Status = status
	t.Error = errMsg
	return nil
}

type fakeDocStore struct {
	mu      sync.Mutex
	uploads map[string][]byte
}

func (f *fakeDocStore) SaveUpload(id, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads[id] = data
	return "uploads/" + id, nil
}

func (f *fakeDocStore) ReadUpload(id string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.uploads[id]
	if !ok {
		return nil, fmt.Errorf("no upload stored for teaser '%s'", id)
	}
	return data, nil
}

func (f *fakeDocStore) DeleteUpload(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.uploads, id)
	return nil
}

func (f *fakeDocStore) BasePath() string { return "" }

type fakeStorageManager struct {
	teasers *fakeTeaserStore
	docs    *fakeDocStore
}

func (f *fakeStorageManager) TeaserStore() interfaces.TeaserStore     { return f.teasers }
func (f *fakeStorageManager) DocumentStore() interfaces.DocumentStore { return f.docs }
func (f *fakeStorageManager) Close() error                            { return nil }

type fakePipeline struct {
	mu         sync.Mutex
	started    []string
	canceled   []string
	lastBlocks []string
}

func (f *fakePipeline) Process(context.Context, string, []string) error { return nil }

func (f *fakePipeline) Start(teaserID string, buildingBlocks []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, teaserID)
	f.lastBlocks = buildingBlocks
}

func (f *fakePipeline) Cancel(teaserID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canceled = append(f.canceled, teaserID)
	return true
}

func (f *fakePipeline) startCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.started)
}

// --- harness ---

type testHarness struct {
	server   *Server
	storage  *fakeStorageManager
	pipeline *fakePipeline
	config   *common.Config
}

func newTestServer(t *testing.T, mutate ...func(*common.Config)) *testHarness {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Reports.Dir = t.TempDir()
	for _, m := range mutate {
		m(config)
	}

	storage := &fakeStorageManager{
		teasers: newFakeTeaserStore(),
		docs:    &fakeDocStore{uploads: make(map[string][]byte)},
	}
	pipeline := &fakePipeline{}

	srv, err := NewServer(config, common.NewSilentLogger(), storage, pipeline)
	require.NoError(t, err)

	return &testHarness{
		server:   srv,
		storage:  storage,
		pipeline: pipeline,
		config:   config,
	}
}

func (h *testHarness) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec
}

// multipartPDF builds a multipart body with a single "file" field.
func multipartPDF(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
