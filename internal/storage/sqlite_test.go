package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteMediumGetSet(t *testing.T) {
	ctx := context.Background()
	m, err := NewSQLiteMedium(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer m.Close()

	if _, ok, err := m.Get(ctx, "userRecords"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := m.Set(ctx, "userRecords", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Set(ctx, "userRecords", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok, err := m.Get(ctx, "userRecords")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Fatalf("unexpected value %s", got)
	}

	if _, ok, _ := m.Get(ctx, "feedingRecords"); ok {
		t.Fatalf("keys must not leak into each other")
	}
}

func TestSQLiteMediumReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	m, err := NewSQLiteMedium(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Migrations must be a no-op the second time.
	m, err = NewSQLiteMedium(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer m.Close()

	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("value lost across reopen: %q ok=%v err=%v", got, ok, err)
	}
}

func TestSQLiteMediumClosed(t *testing.T) {
	m, err := NewSQLiteMedium(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := m.Set(context.Background(), "k", nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}
}
