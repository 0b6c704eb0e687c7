// Package records keeps append-only record collections in a storage.Medium.
//
// Each collection is a single entry holding a JSON array. Every mutation is a
// read-modify-write of that entry, so callers must not run two writes to the
// same collection at once: the second write would drop the first one's
// change. Nothing here locks; single-writer discipline is the caller's job.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"babytrack/internal/core"
	"babytrack/internal/storage"
)

const (
	opGet    = "get"
	opAppend = "append"
	opDelete = "delete"
)

// Store is a typed handle on one named collection.
type Store[T core.Record] struct {
	medium     storage.Medium
	collection string
	logger     *slog.Logger
}

func NewStore[T core.Record](medium storage.Medium, collection string, logger *slog.Logger) *Store[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store[T]{
		medium:     medium,
		collection: collection,
		logger:     logger.With("collection", collection),
	}
}

// NewGrowthStore returns the store for the growth collection.
func NewGrowthStore(medium storage.Medium, logger *slog.Logger) *Store[core.GrowthRecord] {
	return NewStore[core.GrowthRecord](medium, core.GrowthCollection, logger)
}

// NewFeedingStore returns the store for the feeding collection.
func NewFeedingStore(medium storage.Medium, logger *slog.Logger) *Store[core.FeedingEvent] {
	return NewStore[core.FeedingEvent](medium, core.FeedingCollection, logger)
}

// Collection returns the entry name this store reads and writes.
func (s *Store[T]) Collection() string {
	return s.collection
}

// Get returns the stored records in storage order, or an empty slice when
// the collection has never been written. A stored record that fails
// validation makes the whole read fail with a StorageError.
func (s *Store[T]) Get(ctx context.Context) ([]T, error) {
	return s.read(ctx, opGet)
}

// Append adds r to the collection.
func (s *Store[T]) Append(ctx context.Context, r T) error {
	items, err := s.read(ctx, opAppend)
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.RecordID() == r.RecordID() {
			return fmt.Errorf("append %s: %w: %s", s.collection, ErrDuplicateID, r.RecordID())
		}
	}

	if err := s.write(ctx, opAppend, append(items, r)); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Record appended", "id", r.RecordID(), "total", len(items)+1)
	return nil
}

// Delete removes the record with the given id. Deleting an id that is not
// present succeeds without writing.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	items, err := s.read(ctx, opDelete)
	if err != nil {
		return err
	}

	kept := make([]T, 0, len(items))
	for _, r := range items {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(items) {
		s.logger.DebugContext(ctx, "Delete matched no record", "id", id)
		return nil
	}

	if err := s.write(ctx, opDelete, kept); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Record deleted", "id", id, "total", len(kept))
	return nil
}

// Latest returns the most recent record of the collection.
func (s *Store[T]) Latest(ctx context.Context) (T, bool, error) {
	items, err := s.read(ctx, opGet)
	if err != nil {
		var zero T
		return zero, false, err
	}
	r, ok := Latest(items)
	return r, ok, nil
}

func (s *Store[T]) read(ctx context.Context, op string) ([]T, error) {
	raw, ok, err := s.medium.Get(ctx, s.collection)
	if err != nil {
		return nil, &StorageError{Op: op, Collection: s.collection, Err: err}
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &StorageError{Op: op, Collection: s.collection, Err: fmt.Errorf("decode: %w", err)}
	}
	for i, r := range items {
		if err := r.Validate(); err != nil {
			return nil, &StorageError{Op: op, Collection: s.collection, Err: fmt.Errorf("decode record %d (id %q): %w", i, r.RecordID(), err)}
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *Store[T]) write(ctx context.Context, op string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return &StorageError{Op: op, Collection: s.collection, Err: fmt.Errorf("encode: %w", err)}
	}
	if err := s.medium.Set(ctx, s.collection, raw); err != nil {
		return &StorageError{Op: op, Collection: s.collection, Err: err}
	}
	return nil
}
