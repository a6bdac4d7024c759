package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/hackathons/internal/config"
	"github.com/klokku/hackathons/internal/database"
	log "github.com/sirupsen/logrus"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Storage is a string key/value store in the shape of the browser's localStorage.
type Storage interface {
	// GetItem returns the value under key and whether the key exists.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key string, value string) error
	Close() error
}

// Open builds the backend selected by cfg.Storage.Driver, running migrations for the SQL ones.
func Open(ctx context.Context, cfg config.Application) (Storage, error) {
	log.Debugf("Opening %s storage", cfg.Storage.Driver)
	switch cfg.Storage.Driver {
	case "", "file":
		return NewFileStorage(cfg.Storage.Path)
	case "memory":
		return NewMemoryStorage(), nil
	case "sqlite":
		db, err := database.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		if err := database.MigrateSQLite(db); err != nil {
			db.Close()
			return nil, err
		}
		return NewSQLiteStorage(db), nil
	case "postgres":
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		pool, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewPostgresStorage(pool), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Storage.Driver)
	}
}
