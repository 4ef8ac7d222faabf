// Package teaserdb provides BadgerDB-based persistence for teaser records
package teaserdb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/ateger/teaserai/internal/common"
	"github.com/ateger/teaserai/internal/models"
)

// Store wraps badgerhold for typed teaser storage
type Store struct {
	store  *badgerhold.Store
	logger *common.Logger
}

// NewStore opens the teaser database at the given path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil // Disable badger's internal logging

	store, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open teaser store: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Teaser store opened")

	return &Store{
		store:  store,
		logger: logger,
	}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// SaveTeaser inserts or updates a teaser record.
func (s *Store) SaveTeaser(ctx context.Context, teaser *models.Teaser) error {
	if teaser.ID == "" {
		return fmt.Errorf("teaser ID is required")
	}
	now := time.Now()
	if teaser.CreatedAt.IsZero() {
		teaser.CreatedAt = now
	}
	teaser.UpdatedAt = now

	if err := s.store.Upsert(teaser.ID, teaser); err != nil {
		return fmt.Errorf("failed to save teaser '%s': %w", teaser.ID, err)
	}
	return nil
}

// GetTeaser retrieves a teaser by ID.
func (s *Store) GetTeaser(ctx context.Context, id string) (*models.Teaser, error) {
	var teaser models.Teaser
	err := s.store.Get(id, &teaser)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("teaser '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get teaser: %w", err)
	}
	return &teaser, nil
}

// ListTeasers returns all teasers, newest first.
func (s *Store) ListTeasers(ctx context.Context) ([]*models.Teaser, error) {
	var teasers []*models.Teaser
	if err := s.store.Find(&teasers, nil); err != nil {
		return nil, fmt.Errorf("failed to list teasers: %w", err)
	}
	sort.Slice(teasers, func(i, j int) bool {
		return teasers[i].CreatedAt.After(teasers[j].CreatedAt)
	})
	return teasers, nil
}

// DeleteTeaser removes a teaser by ID.
func (s *Store) DeleteTeaser(ctx context.Context, id string) error {
	err := s.store.Delete(id, &models.Teaser{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("teaser '%s' not found", id)
		}
		return fmt.Errorf("failed to delete teaser: %w", err)
	}
	return nil
}

// UpdateStatus transitions a teaser's lifecycle status.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.TeaserStatus, errMsg string) error {
	if !status.Valid() {
		return fmt.Errorf("invalid teaser status '%s'", status)
	}

	teaser, err := s.GetTeaser(ctx, id)
	if err != nil {
		return err
	}

	teaser.Status = status
	teaser.Error = errMsg
	if err := s.SaveTeaser(ctx, teaser); err != nil {
		return err
	}

	s.logger.Debug().
		Str("teaser", id).
		Str("status", string(status)).
		Msg("Teaser status updated")
	return nil
}
