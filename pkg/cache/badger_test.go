package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyphersynth/synth/pkg/executor"
)

func TestBadgerStoreGetSetRoundTrip(t *testing.T) {
	store, err := OpenBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	store.Set("a", executor.Table{Columns: []string{"name"}, Rows: [][]string{{"Ada"}}})

	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, got.Columns)
	assert.Equal(t, [][]string{{"Ada"}}, got.Rows)
}

func TestBadgerStoreMissReturnsFalse(t *testing.T) {
	store, err := OpenBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenBadgerStore(dir)
	require.NoError(t, err)
	store.Set("a", executor.Table{Columns: []string{"name"}, Rows: [][]string{{"Ada"}}})
	require.NoError(t, store.Close())

	reopened, err := OpenBadgerStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.Get("a")
	require.True(t, ok)
	assert.Equal(t, [][]string{{"Ada"}}, got.Rows)
}
