package backend

import (
	"context"
	"errors"
	"fmt"

	"babytrack/internal/log"
	"babytrack/internal/storage"
	"babytrack/internal/storage/badgerkv"
	"babytrack/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case BadgerBackend:
		return f.createBadgerBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	medium, err := storage.NewSQLiteMedium(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite medium: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", log.FieldPath, config.SQLiteDBPath)

	return &BackendResult{
		Medium:  medium,
		Cleanup: medium.Close,
	}, nil
}

func (f *DefaultFactory) createBadgerBackend(ctx context.Context, config Config) (*BackendResult, error) {
	var (
		medium *badgerkv.Medium
		err    error
	)
	if config.BadgerDir == "" {
		medium, err = badgerkv.OpenInMemory()
	} else {
		medium, err = badgerkv.Open(config.BadgerDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Badger medium: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized Badger backend", log.FieldPath, config.BadgerDir, "in_memory", config.BadgerDir == "")

	return &BackendResult{
		Medium:  medium,
		Cleanup: medium.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data" // Default directory
	}

	store := memory.NewFromFiles(dataDir)

	f.logger.InfoContext(ctx, "Initialized memory backend", log.FieldPath, dataDir, log.FieldCount, len(store.Keys()))

	return &BackendResult{
		Medium: store,
		Cleanup: func() error {
			saveErr := store.SaveToFiles(dataDir)
			if saveErr != nil {
				f.logger.Error("Failed to save memory backend", log.FieldPath, dataDir, log.FieldError, saveErr)
			}
			return errors.Join(saveErr, store.Close())
		},
	}, nil
}
