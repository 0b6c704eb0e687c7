package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteMedium keeps every key in one row of the entries table.
type SQLiteMedium struct {
	db      *sql.DB
	getStmt *sql.Stmt
	setStmt *sql.Stmt
}

func NewSQLiteMedium(dbPath string) (*SQLiteMedium, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// busy_timeout waits on a locked database instead of failing at once.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.Clean(dbPath))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	get, err := db.Prepare(`SELECT value FROM entries WHERE key = ?`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare get: %w", err)
	}

	set, err := db.Prepare(`
		INSERT INTO entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		get.Close()
		db.Close()
		return nil, fmt.Errorf("prepare set: %w", err)
	}

	return &SQLiteMedium{db: db, getStmt: get, setStmt: set}, nil
}

// Get implements Medium.
func (m *SQLiteMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m == nil || m.db == nil {
		return nil, false, ErrClosed
	}

	var value []byte
	err := m.getStmt.QueryRowContext(ctx, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select entry %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Medium.
func (m *SQLiteMedium) Set(ctx context.Context, key string, value []byte) error {
	if m == nil || m.db == nil {
		return ErrClosed
	}

	if _, err := m.setStmt.ExecContext(ctx, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("upsert entry %s: %w", key, err)
	}

	slog.DebugContext(ctx, "Entry written to SQLite", "key", key, "bytes", len(value))
	return nil
}

func (m *SQLiteMedium) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	if m.getStmt != nil {
		_ = m.getStmt.Close()
	}
	if m.setStmt != nil {
		_ = m.setStmt.Close()
	}
	err := m.db.Close()
	m.db = nil
	return err
}
