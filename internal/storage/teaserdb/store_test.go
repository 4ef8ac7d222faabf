package teaserdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateger/teaserai/internal/common"
	"github.com/ateger/teaserai/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetTeaser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	teaser := &models.Teaser{
		ID:       "t-1",
		Filename: "acme.pdf",
		Status:   models.TeaserStatusPending,
	}
	require.NoError(t, store.SaveTeaser(ctx, teaser))
	assert.False(t, teaser.CreatedAt.IsZero())

	got, err := store.GetTeaser(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "acme.pdf", got.Filename)
	assert.Equal(t, models.TeaserStatusPending, got.Status)
}

func TestSaveTeaser_RequiresID(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveTeaser(context.Background(), &models.Teaser{Filename: "x.pdf"})
	require.Error(t, err)
}

func TestGetTeaser_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetTeaser(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSaveTeaser_PreservesAnalysisOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	analysis := models.Analysis{
		{Title: "Risk", Body: "Mock risk analysis."},
		{Title: "Dividends", Body: "Mock dividends."},
	}
	require.NoError(t, store.SaveTeaser(ctx, &models.Teaser{
		ID:       "t-2",
		Filename: "acme.pdf",
		Status:   models.TeaserStatusCompleted,
		Analysis: analysis,
	}))

	got, err := store.GetTeaser(ctx, "t-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Risk", "Dividends"}, got.Analysis.Titles())
}

func TestListTeasers_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTeaser(ctx, &models.Teaser{ID: "a", Filename: "a.pdf", Status: models.TeaserStatusPending}))
	require.NoError(t, store.SaveTeaser(ctx, &models.Teaser{ID: "b", Filename: "b.pdf", Status: models.TeaserStatusPending}))

	teasers, err := store.ListTeasers(ctx)
	require.NoError(t, err)
	require.Len(t, teasers, 2)
	assert.False(t, teasers[0].CreatedAt.Before(teasers[1].CreatedAt))
}

func TestDeleteTeaser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTeaser(ctx, &models.Teaser{ID: "t-3", Filename: "x.pdf", Status: models.TeaserStatusPending}))
	require.NoError(t, store.DeleteTeaser(ctx, "t-3"))

	_, err := store.GetTeaser(ctx, "t-3")
	require.Error(t, err)

	err = store.DeleteTeaser(ctx, "t-3")
	require.Error(t, err)
}

func TestUpdateStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTeaser(ctx, &models.Teaser{ID: "t-4", Filename: "x.pdf", Status: models.TeaserStatusPending}))

	require.NoError(t, store.UpdateStatus(ctx, "t-4", models.TeaserStatusError, "boom"))

	got, err := store.GetTeaser(ctx, "t-4")
	require.NoError(t, err)
	assert.Equal(t, models.TeaserStatusError, got.Status)
	assert.Equal(t, "boom", got.Error)

	err = store.UpdateStatus(ctx, "t-4", models.TeaserStatus("bogus"), "")
	require.Error(t, err)
}
