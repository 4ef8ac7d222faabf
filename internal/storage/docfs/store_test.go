package docfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateger/teaserai/internal/common"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSaveAndReadUpload(t *testing.T) {
	store := newTestStore(t)

	path, err := store.SaveUpload("t-1", "acme teaser.pdf", []byte("%PDF-1.4 test"))
	require.NoError(t, err)
	assert.FileExists(t, path)

	data, err := store.ReadUpload("t-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)
}

func TestSaveUpload_Overwrite(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveUpload("t-1", "a.pdf", []byte("first"))
	require.NoError(t, err)
	_, err = store.SaveUpload("t-1", "a.pdf", []byte("second"))
	require.NoError(t, err)

	data, err := store.ReadUpload("t-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestSaveUpload_SanitizesKeys(t *testing.T) {
	store := newTestStore(t)

	path, err := store.SaveUpload("t-1", "../../etc/passwd.pdf", []byte("x"))
	require.NoError(t, err)

	// The stored file must remain inside the uploads directory.
	rel, err := filepath.Rel(store.BasePath(), path)
	require.NoError(t, err)
	assert.False(t, filepath.IsAbs(rel))
	assert.NotContains(t, rel, "..")
}

func TestSaveUpload_NoTempLeftovers(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveUpload("t-1", "a.pdf", []byte("x"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(store.BasePath(), "uploads"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestReadUpload_Missing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.ReadUpload("nope")
	require.Error(t, err)
}

func TestDeleteUpload(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveUpload("t-1", "a.pdf", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteUpload("t-1"))
	_, err = store.ReadUpload("t-1")
	require.Error(t, err)

	// Deleting a missing upload is not an error.
	require.NoError(t, store.DeleteUpload("t-1"))
}
