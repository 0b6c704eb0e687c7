// Package storage provides the flat key-value medium the record store
// persists its collections in, with a SQLite implementation.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by media used after Close.
var ErrClosed = errors.New("medium closed")

// Medium is a flat key-value namespace. Values are opaque bytes.
type Medium interface {
	// Get returns the value stored under key; ok is false when the key is
	// absent, which is not an error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	Close() error
}
