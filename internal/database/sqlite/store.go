// Package sqlite is the device-local snapshot store. Each forester's state is
// one JSON blob under a fixed storage key, like browser local storage.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/osse101/Pokemonkey_Go/internal/database"
	"github.com/osse101/Pokemonkey_Go/internal/database/migrations"
	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// StorageKeyPrefix namespaces every local snapshot key.
const StorageKeyPrefix = "pokemonkey_cloud_v3_secure"

// StorageKey returns the local storage key for a user.
func StorageKey(userID string) string {
	return StorageKeyPrefix + ":" + userID
}

// Store persists snapshots in a SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite file at path and applies the local migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := database.Migrate(ctx, db, goose.DialectSQLite3, migrations.SQLite()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Ping checks the SQLite handle is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the locally stored snapshot for a user.
func (s *Store) Load(ctx context.Context, userID string) (domain.GameState, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM local_storage WHERE storage_key = ?`, StorageKey(userID),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GameState{}, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, userID)
	}
	if err != nil {
		return domain.GameState{}, fmt.Errorf("load local snapshot: %w", err)
	}

	var state domain.GameState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return domain.GameState{}, fmt.Errorf("decode local snapshot: %w", err)
	}
	return state, nil
}

// Save writes the snapshot if its version is newer than the stored one.
func (s *Store) Save(ctx context.Context, state domain.GameState) error {
	if state.UserID == "" {
		return fmt.Errorf("%w: snapshot has no user id", domain.ErrInvalidInput)
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode local snapshot: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO local_storage (storage_key, version, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (storage_key) DO UPDATE
		 SET version = excluded.version, value = excluded.value, updated_at = excluded.updated_at
		 WHERE local_storage.version < excluded.version`,
		StorageKey(state.UserID), int64(state.Version), string(raw), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save local snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save local snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: user %s version %d", domain.ErrStaleSnapshot, state.UserID, state.Version)
	}
	return nil
}
