// Package storage persists the application state as a single keyed blob.
package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/claude/clab/internal/config"
)

// Key is the name of the state blob.
const Key = "clab_storage"

var ErrUnknownDriver = errors.New("unknown storage driver")

//go:embed migrations
var migrations embed.FS

// Store reads and writes the state blob. Load returns nil, nil when nothing
// has been saved yet.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Close() error
}

// Open returns the store selected by cfg.Driver with its schema applied.
func Open(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		log.Info("opening sqlite store", "path", cfg.Path)
		return OpenSQLite(ctx, cfg.Path)
	case config.DriverPostgres:
		log.Info("opening postgres store")
		return OpenPostgres(ctx, cfg.DSN())
	case config.DriverMemory:
		log.Info("using in-memory store")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// RunMigrations applies all pending migrations for the configured driver.
// The memory driver has no schema.
func RunMigrations(cfg config.StorageConfig) error {
	switch cfg.Driver {
	case config.DriverSQLite:
		return migrateUp("sqlite", "sqlite://"+cfg.Path)
	case config.DriverPostgres:
		return migrateUp("postgres", cfg.DSN())
	case config.DriverMemory:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func migrateUp(dir, url string) error {
	src, err := iofs.New(migrations, "migrations/"+dir)
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
