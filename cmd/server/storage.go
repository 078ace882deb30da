package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"note-slides/cmd/server/handlers"
	"note-slides/internal/clients/memory"
	"note-slides/internal/clients/mongo"
	"note-slides/internal/clients/sqlite"
	"note-slides/internal/config"
	"note-slides/internal/services/notes"
)

// backend is the storage selected by STORAGE_DRIVER.
type backend struct {
	driver string
	repo   notes.Repository
	ping   handlers.PingFunc
	close  func(ctx context.Context) error
}

// openStorage connects the configured driver and prepares its schema.
func openStorage(ctx context.Context, cfg config.Config, log *slog.Logger) (*backend, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		conn, err := mongo.Connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		repo, err := mongo.NewNotesRepo(ctx, conn.Database())
		if err != nil {
			_ = conn.Close(ctx)
			return nil, fmt.Errorf("%w: %w", notes.ErrCreateNotesRepo, err)
		}
		return &backend{driver: cfg.StorageDriver, repo: repo, ping: repo.Ping, close: conn.Close}, nil

	case config.StorageSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite data dir: %w", err)
			}
		}
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", notes.ErrCreateNotesRepo, err)
		}
		log.Info("opened sqlite", "path", cfg.SQLitePath)
		return &backend{
			driver: cfg.StorageDriver,
			repo:   repo,
			ping:   repo.Ping,
			close:  func(context.Context) error { return repo.Close() },
		}, nil

	case config.StorageMemory:
		repo := memory.NewNotesRepo()
		log.Warn("using in-memory storage, notes are lost on restart")
		return &backend{
			driver: cfg.StorageDriver,
			repo:   repo,
			ping:   repo.Ping,
			close:  func(context.Context) error { return nil },
		}, nil
	}

	return nil, config.ErrStorageDriver
}
