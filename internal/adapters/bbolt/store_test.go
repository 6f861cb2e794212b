package bbolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTextRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveText("hash1", "document text"))
	text, err := store.LoadText("hash1")
	require.NoError(t, err)
	assert.Equal(t, "document text", text)
}

func TestLoadTextAbsent(t *testing.T) {
	store := newTestStore(t)
	text, err := store.LoadText("nope")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestSaveTextIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveText("h", "first"))
	// The key is the hash of the value; an existing key is left alone.
	require.NoError(t, store.SaveText("h", "second"))

	text, err := store.LoadText("h")
	require.NoError(t, err)
	assert.Equal(t, "first", text)
}

func TestResultRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveResult("h", []byte(`{"v":1}`)))
	data, err := store.LoadResult("h")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), data)

	// Results are replaceable, unlike texts.
	require.NoError(t, store.SaveResult("h", []byte(`{"v":2}`)))
	data, err = store.LoadResult("h")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":2}`), data)
}

func TestLoadResultAbsent(t *testing.T) {
	store := newTestStore(t)
	data, err := store.LoadResult("nope")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStatsAndWipe(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveText("h1", "a"))
	require.NoError(t, store.SaveText("h2", "b"))
	require.NoError(t, store.SaveResult("h1", []byte("{}")))

	texts, results, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, texts)
	assert.Equal(t, 1, results)

	require.NoError(t, store.Wipe())
	texts, results, err = store.Stats()
	require.NoError(t, err)
	assert.Zero(t, texts)
	assert.Zero(t, results)

	// Store stays usable after a wipe.
	require.NoError(t, store.SaveText("h3", "c"))
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveText("h", "survives"))
	require.NoError(t, store.Close())

	store, err = NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	text, err := store.LoadText("h")
	require.NoError(t, err)
	assert.Equal(t, "survives", text)
}
