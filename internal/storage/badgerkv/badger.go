// Package badgerkv is a storage.Medium backed by an embedded Badger database.
package badgerkv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"babytrack/internal/storage"
)

type Medium struct {
	db *badger.DB
}

// Open opens (or creates) a Badger database in dir.
func Open(dir string) (*Medium, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create badger directory: %w", err)
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a Badger database that never touches disk.
func OpenInMemory() (*Medium, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Medium, error) {
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Medium{db: db}, nil
}

// Get implements storage.Medium.
func (m *Medium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m == nil || m.db == nil {
		return nil, false, storage.ErrClosed
	}

	var value []byte
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements storage.Medium.
func (m *Medium) Set(ctx context.Context, key string, value []byte) error {
	if m == nil || m.db == nil {
		return storage.ErrClosed
	}

	err := m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}

	slog.DebugContext(ctx, "Entry written to Badger", "key", key, "bytes", len(value))
	return nil
}

func (m *Medium) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
