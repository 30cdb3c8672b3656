package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyphersynth/synth/pkg/executor"
)

func TestLRUGetSetRoundTrip(t *testing.T) {
	c := NewLRU(2)
	c.Set("a", executor.Table{Columns: []string{"name"}, Rows: [][]string{{"Ada"}}})

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Ada", got.Rows[0][0])
}

func TestLRUMissReturnsFalse(t *testing.T) {
	c := NewLRU(2)
	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU(2)
	c.Set("a", executor.Table{})
	c.Set("b", executor.Table{})
	c.Get("a") // a is now most recently used; b is next to evict
	c.Set("c", executor.Table{})

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRUSetOverwritesExistingKey(t *testing.T) {
	c := NewLRU(2)
	c.Set("a", executor.Table{Columns: []string{"name"}, Rows: [][]string{{"Ada"}}})
	c.Set("a", executor.Table{Columns: []string{"name"}, Rows: [][]string{{"Bertie"}}})

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Bertie", got.Rows[0][0])
	assert.Equal(t, 1, c.Len())
}
