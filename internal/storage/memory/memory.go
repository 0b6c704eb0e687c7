// Package memory is a process-local storage.Medium, loaded from and saved to
// JSON files.
package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"babytrack/internal/core"
	"babytrack/internal/storage"
)

type Store struct {
	mu     sync.Mutex
	closed bool
	items  map[string][]byte
	dirty  map[string]bool
}

func New() *Store {
	return &Store{items: map[string][]byte{}, dirty: map[string]bool{}}
}

// NewFromFiles seeds the store with <collection>.json files found in base,
// e.g. data/userRecords.json. Missing files leave the collection absent.
func NewFromFiles(base string) *Store {
	s := New()
	for _, key := range []string{core.GrowthCollection, core.FeedingCollection} {
		b, err := os.ReadFile(filepath.Join(base, key+".json"))
		if err != nil || len(b) == 0 {
			continue
		}
		s.items[key] = b
	}
	return s
}

// Get implements storage.Medium.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, storage.ErrClosed
	}
	v, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements storage.Medium.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrClosed
	}
	s.items[key] = append([]byte(nil), value...)
	s.dirty[key] = true
	return nil
}

// SaveToFiles writes every key changed since the store was created, or
// since the last save, to <base>/<key>.json. Each file is replaced through
// a rename so a failed save leaves the previous content in place.
func (s *Store) SaveToFiles(base string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.dirty) == 0 {
		return nil
	}
	if err := os.MkdirAll(base, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	for key := range s.dirty {
		if err := writeFile(filepath.Join(base, key+".json"), s.items[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		delete(s.dirty, key)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Keys returns the keys currently present.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
