package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Pokemonkey_Go/internal/catalog"
	"github.com/osse101/Pokemonkey_Go/internal/config"
	"github.com/osse101/Pokemonkey_Go/internal/database"
	"github.com/osse101/Pokemonkey_Go/internal/database/postgres"
	"github.com/osse101/Pokemonkey_Go/internal/database/sqlite"
	"github.com/osse101/Pokemonkey_Go/internal/eventlog"
	"github.com/osse101/Pokemonkey_Go/internal/repository"
)

// Repositories holds the persistence the session service writes through.
type Repositories struct {
	Local   *sqlite.Store
	Shared  repository.Snapshot
	Reports repository.Report
	Events  eventlog.Repository
}

// ConnectDatabase opens the shared Postgres pool and, when enabled, applies
// the embedded migrations.
func ConnectDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}

	if cfg.DBAutoMigrate {
		if err := database.MigratePool(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDatabase, err)
		}
		slog.Info(LogMsgMigrationsApplied)
	}
	return pool, nil
}

// InitializeRepositories opens the device-local SQLite store and wraps the
// shared pool in the snapshot, report and event log repositories.
func InitializeRepositories(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool) (*Repositories, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LocalStorePath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLocalStore, err)
	}
	local, err := sqlite.Open(ctx, cfg.LocalStorePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLocalStore, err)
	}

	slog.Info(LogMsgStoresOpened, "local_path", cfg.LocalStorePath)
	return &Repositories{
		Local:   local,
		Shared:  postgres.NewSnapshotRepository(dbPool),
		Reports: postgres.NewReportRepository(dbPool),
		Events:  postgres.NewEventLogRepository(dbPool),
	}, nil
}

// LoadCatalog reads the mission and skin catalogs from cfg.CatalogDir,
// falling back to the built-in copies for files that are absent.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgCatalogLoaded,
		"dir", cfg.CatalogDir,
		"missions", len(cat.Missions()),
		"skins", len(cat.Skins()))
	return cat, nil
}
