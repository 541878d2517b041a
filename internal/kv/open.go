package kv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
)

var newS3Client = func(ctx context.Context, bucket string) (S3API, error) {
	return NewS3Client(ctx, bucket)
}

// Open builds the backend selected by cfg. The returned close function is
// never nil.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, func() error, error) {
	noop := func() error { return nil }
	if err := cfg.Validate(); err != nil {
		return nil, noop, err
	}

	switch cfg.Backend {
	case config.BackendMemory:
		logging.Warn(logger, "memory storage selected; roster will not survive restarts")
		return NewMemoryStore(), noop, nil

	case config.BackendFile:
		logging.Info(logger, "using file storage", logging.FieldBackend, cfg.Backend, "path", cfg.Path)
		return NewFileStore(cfg.Path), noop, nil

	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, noop, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite: %w", err)
		}
		store, err := NewGormStore(db)
		if err != nil {
			return nil, noop, err
		}
		logging.Info(logger, "using sqlite storage", logging.FieldBackend, cfg.Backend, "path", cfg.SQLitePath)
		return store, store.Close, nil

	case config.BackendPostgres:
		db, err := OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		store, err := NewGormStore(db)
		if err != nil {
			return nil, noop, err
		}
		logging.Info(logger, "using postgres storage", logging.FieldBackend, cfg.Backend)
		return NewRetryingStore(ctx, store, logger, 0, 0), store.Close, nil

	case config.BackendS3:
		client, err := newS3Client(ctx, cfg.S3Bucket)
		if err != nil {
			return nil, noop, err
		}
		logging.Info(logger, "using s3 storage", logging.FieldBackend, cfg.Backend, "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		s3 := NewS3Store(ctx, client, cfg.S3Bucket, cfg.S3Prefix, cfg.S3Gzip)
		return NewRetryingStore(ctx, s3, logger, 0, 0), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
