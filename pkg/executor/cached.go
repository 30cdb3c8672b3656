package executor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Store is a key-value cache of previously executed query results.
// pkg/cache provides both an in-process and a Badger-backed
// implementation; Cached only depends on this narrow seam so it never
// needs to know which one is behind it.
type Store interface {
	Get(key string) (Table, bool)
	Set(key string, t Table)
}

// Cached wraps an Executor with a Store, so repeated synthesis
// attempts against the same rendered Cypher text (common across
// sketches that differ only in a later Require or Return) skip
// re-evaluation.
type Cached struct {
	inner Executor
	store Store
}

// NewCached returns an Executor that checks store before delegating
// to inner, and populates store on a miss.
func NewCached(inner Executor, store Store) *Cached {
	return &Cached{inner: inner, store: store}
}

func (c *Cached) Execute(ctx context.Context, cypher string) (Table, error) {
	key := cacheKey(cypher)
	if t, ok := c.store.Get(key); ok {
		return t, nil
	}
	t, err := c.inner.Execute(ctx, cypher)
	if err != nil {
		return Table{}, err
	}
	c.store.Set(key, t)
	return t, nil
}

func (c *Cached) Close() error {
	return c.inner.Close()
}

func cacheKey(cypher string) string {
	sum := sha256.Sum256([]byte(cypher))
	return hex.EncodeToString(sum[:])
}
