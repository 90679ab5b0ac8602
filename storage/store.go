// Package storage is the durable source of truth: a namespaced key-value
// layer holding whole collections as single values. Writes replace the
// entire collection, so the last writer wins at collection granularity.
package storage

import (
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Store reads and writes whole collection blobs. Implementations never
// surface read errors to callers: an absent or unreadable key behaves
// like an empty collection, and a failed write degrades silently after
// logging (the UI must keep working without durability).
type Store interface {
	Read(key string) []byte
	Write(key string, value []byte)
	Delete(key string)
	Close() error
}

// BadgerStore persists collections in BadgerDB, one value per key.
type BadgerStore struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerStore(db *badger.DB, log *slog.Logger) *BadgerStore {
	return &BadgerStore{db: db, log: log}
}

// Open opens BadgerDB at path and falls back to an in-memory store when
// the database is unavailable, so a broken data directory degrades to
// session-only behavior instead of crashing the app.
func Open(path string, log *slog.Logger) Store {
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		log.Warn("Storage unavailable, falling back to in-memory store", "path", path, "error", err)
		return NewMemoryStore()
	}
	return NewBadgerStore(db, log)
}

func (s *BadgerStore) Read(key string) []byte {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil && err != badger.ErrKeyNotFound {
		s.log.Error("Read failed, treating collection as empty", "key", key, "error", err)
	}
	return value
}

func (s *BadgerStore) Write(key string, value []byte) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		s.log.Error("Write failed, collection not persisted", "key", key, "error", err)
	}
}

func (s *BadgerStore) Delete(key string) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && err != badger.ErrKeyNotFound {
		s.log.Error("Delete failed", "key", key, "error", err)
	}
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
