// Package bbolt implements the ports.Storage interface using bbolt
// (embedded B+ tree). Document texts and serialized scan results live in
// separate top-level buckets, both keyed by the document's content hash.
// Writes are transactional — a crash mid-write cannot corrupt previously
// committed data.
package bbolt

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketTexts   = []byte("texts")
	bucketResults = []byte("results")
)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketTexts, bucketResults} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveText stores a document text under its content hash. Texts are
// immutable by construction (the key is the hash of the value), so an
// existing key is left alone.
func (s *Store) SaveText(hash, text string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTexts)
		if b.Get([]byte(hash)) != nil {
			return nil
		}
		return b.Put([]byte(hash), []byte(text))
	})
}

// LoadText retrieves a document text by content hash. Returns "", nil when
// no text is stored.
func (s *Store) LoadText(hash string) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketTexts).Get([]byte(hash)); v != nil {
			text = string(v)
		}
		return nil
	})
	return text, err
}

// SaveResult stores a serialized DocResult under the document's content
// hash, replacing any prior result.
func (s *Store) SaveResult(hash string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResults).Put([]byte(hash), data)
	})
}

// LoadResult retrieves a serialized DocResult. Returns nil, nil when no
// result is cached for the hash.
func (s *Store) LoadResult(hash string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketResults).Get([]byte(hash)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	return data, err
}

// Stats returns the number of stored texts and cached results.
func (s *Store) Stats() (texts, results int, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		texts = tx.Bucket(bucketTexts).Stats().KeyN
		results = tx.Bucket(bucketResults).Stats().KeyN
		return nil
	})
	return texts, results, err
}

// Wipe drops and recreates both buckets.
func (s *Store) Wipe() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketTexts, bucketResults} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}
