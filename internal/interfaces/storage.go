// Package interfaces defines service contracts for Teaser AI
package interfaces

import (
	"context"

	"github.com/ateger/teaserai/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	// TeaserStore manages teaser records.
	TeaserStore() TeaserStore

	// DocumentStore manages uploaded teaser PDFs and report artifacts.
	DocumentStore() DocumentStore

	// Lifecycle
	Close() error
}

// TeaserStore persists teaser records.
type TeaserStore interface {
	SaveTeaser(ctx context.Context, teaser *models.Teaser) error
	GetTeaser(ctx context.Context, id string) (*models.Teaser, error)
	ListTeasers(ctx context.Context) ([]*models.Teaser, error)
	DeleteTeaser(ctx context.Context, id string) error

	// UpdateStatus transitions a teaser's lifecycle status. The optional
	// errMsg is recorded when the status is error.
	UpdateStatus(ctx context.Context, id string, status models.TeaserStatus, errMsg string) error
}

// DocumentStore persists binary artifacts on the filesystem.
type DocumentStore interface {
	// SaveUpload stores an uploaded teaser PDF and returns its path.
	SaveUpload(id, filename string, data []byte) (string, error)

	// ReadUpload returns the stored PDF for a teaser.
	ReadUpload(id string) ([]byte, error)

	// DeleteUpload removes the stored PDF for a teaser, if present.
	DeleteUpload(id string) error

	// BasePath returns the document storage root.
	BasePath() string
}
