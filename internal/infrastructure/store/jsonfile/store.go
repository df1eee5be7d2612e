// Package jsonfile implements the collection store on flat JSON files: one
// file per named collection, each holding the full snapshot of its record
// sequence. A write replaces the snapshot wholesale; reads of a collection
// that does not exist yet return an empty sequence so collections are
// created lazily on first write.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/oakmart/storefront-api/internal/api/metrics"
)

// Store owns a data directory and one mutex per collection. Any
// read-modify-write on a collection must run through Update, which holds the
// collection's lock across the read, the mutation, and the write — two
// concurrent appends can therefore never clobber each other's snapshot.
type Store struct {
	dir string

	mu    sync.Mutex // guards locks
	locks map[string]*sync.Mutex
}

// New creates a Store rooted at dir, creating the directory as needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Dir returns the data directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// lock returns the mutex for a collection, creating it on first use.
func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// readLocked loads the snapshot for a collection. Caller holds the lock.
func readLocked[T any](s *Store, collection string) ([]T, error) {
	metrics.CollectionOpsTotal.WithLabelValues(collection, "read").Inc()

	raw, err := os.ReadFile(s.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read collection %s: %w", collection, err)
	}

	var recs []T
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("store: decode collection %s: %w", collection, err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

// writeLocked replaces the snapshot for a collection. Caller holds the lock.
// The snapshot is written to a temp file and renamed into place so a crash
// mid-write never leaves a torn file behind.
func writeLocked[T any](s *Store, collection string, recs []T) error {
	metrics.CollectionOpsTotal.WithLabelValues(collection, "write").Inc()

	if recs == nil {
		recs = []T{}
	}
	raw, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode collection %s: %w", collection, err)
	}

	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("store: write collection %s: %w", collection, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write collection %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write collection %s: %w", collection, err)
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write collection %s: %w", collection, err)
	}
	return nil
}

// Read returns the current snapshot of a collection. A collection that has
// never been written reads as empty, not as an error.
func Read[T any](s *Store, collection string) ([]T, error) {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return readLocked[T](s, collection)
}

// Write replaces the snapshot of a collection.
func Write[T any](s *Store, collection string, recs []T) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return writeLocked(s, collection, recs)
}

// Update runs a read-modify-write cycle under the collection's exclusive
// lock. fn receives the current snapshot and returns the sequence to
// persist; returning an error aborts the update without writing. The lock
// is released on every path.
func Update[T any](s *Store, collection string, fn func([]T) ([]T, error)) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	recs, err := readLocked[T](s, collection)
	if err != nil {
		return err
	}
	out, err := fn(recs)
	if err != nil {
		return err
	}
	return writeLocked(s, collection, out)
}
