package cache

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"

	"github.com/cyphersynth/synth/pkg/executor"
)

// BadgerStore is a durable query-result cache backed by Badger, for
// synthesis runs that should reuse results across process restarts:
// an opened *badger.DB plus thin Get/Set wrappers that serialize the
// stored value.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if necessary) a Badger database
// rooted at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Get returns the cached table for key, if present.
func (s *BadgerStore) Get(key string) (executor.Table, bool) {
	var table executor.Table
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &table)
		})
	})
	if err != nil {
		return executor.Table{}, false
	}
	return table, true
}

// Set stores t under key. A write failure is logged and otherwise
// swallowed: the cache is an optimization, never a correctness
// dependency for the synthesizer.
func (s *BadgerStore) Set(key string, t executor.Table) {
	encoded, err := json.Marshal(t)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache: failed to encode table")
		return
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), encoded)
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache: failed to persist table")
	}
}
