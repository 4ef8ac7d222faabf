// Package docfs implements file-based storage for uploaded teaser documents.
package docfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ateger/teaserai/internal/common"
)

// Store provides file-based storage for uploaded teaser PDFs.
type Store struct {
	basePath   string
	uploadsDir string
	logger     *common.Logger
}

// NewStore creates a new document store rooted at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document store path %s: %w", path, err)
	}
	uploadsDir := filepath.Join(path, "uploads")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	logger.Info().Str("path", path).Msg("Document store opened")
	return &Store{
		basePath:   path,
		uploadsDir: uploadsDir,
		logger:     logger,
	}, nil
}

// BasePath returns the document storage root.
func (s *Store) BasePath() string {
	return s.basePath
}

// SaveUpload stores an uploaded teaser PDF atomically and returns its path.
// The write goes to a temp file first so a crash never leaves a truncated
// document behind.
func (s *Store) SaveUpload(id, filename string, data []byte) (string, error) {
	target := filepath.Join(s.uploadsDir, uploadKey(id, filename))

	tmp, err := os.CreateTemp(s.uploadsDir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close upload: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	s.logger.Debug().
		Str("teaser", id).
		Str("path", target).
		Int("size", len(data)).
		Msg("Upload stored")
	return target, nil
}

// ReadUpload returns the stored PDF for a teaser.
func (s *Store) ReadUpload(id string) ([]byte, error) {
	path, err := s.findUpload(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload for teaser '%s': %w", id, err)
	}
	return data, nil
}

// DeleteUpload removes the stored PDF for a teaser, if present.
func (s *Store) DeleteUpload(id string) error {
	path, err := s.findUpload(id)
	if err != nil {
		return nil // nothing stored
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete upload for teaser '%s': %w", id, err)
	}
	return nil
}

func (s *Store) findUpload(id string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.uploadsDir, sanitizeKey(id)+"__*"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("no upload stored for teaser '%s'", id)
	}
	return matches[0], nil
}

// uploadKey builds the on-disk name for an upload: "<id>__<filename>".
func uploadKey(id, filename string) string {
	return sanitizeKey(id) + "__" + sanitizeKey(filename)
}

// sanitizeKey strips path separators and other unsafe characters so keys
// are always plain filenames within the store.
func sanitizeKey(key string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(key)
}
