// Package storage coordinates the Teaser AI storage backends
package storage

import (
	"fmt"

	"github.com/ateger/teaserai/internal/common"
	"github.com/ateger/teaserai/internal/interfaces"
	"github.com/ateger/teaserai/internal/storage/docfs"
	"github.com/ateger/teaserai/internal/storage/teaserdb"
)

// Manager owns the teaser database and the document file store.
type Manager struct {
	teasers   *teaserdb.Store
	documents *docfs.Store
	logger    *common.Logger
}

// NewStorageManager opens all storage areas from config.
func NewStorageManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	teasers, err := teaserdb.NewStore(logger, config.Storage.Teasers.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open teaser store: %w", err)
	}

	documents, err := docfs.NewStore(logger, config.Storage.Documents.Path)
	if err != nil {
		teasers.Close()
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}

	return &Manager{
		teasers:   teasers,
		documents: documents,
		logger:    logger,
	}, nil
}

// TeaserStore returns the teaser record store.
func (m *Manager) TeaserStore() interfaces.TeaserStore {
	return m.teasers
}

// DocumentStore returns the document file store.
func (m *Manager) DocumentStore() interfaces.DocumentStore {
	return m.documents
}

// Close closes all storage backends.
func (m *Manager) Close() error {
	var firstErr error
	if err := m.teasers.Close(); err != nil {
		firstErr = err
	}
	return firstErr
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
