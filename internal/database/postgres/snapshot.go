package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// SnapshotRepository stores GameState snapshots as JSONB rows.
type SnapshotRepository struct {
	db *pgxpool.Pool
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load returns the stored snapshot for a user
func (r *SnapshotRepository) Load(ctx context.Context, userID string) (domain.GameState, error) {
	query := `SELECT state FROM game_states WHERE user_id = $1`

	var raw []byte
	if err := r.db.QueryRow(ctx, query, userID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.GameState{}, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, userID)
		}
		return domain.GameState{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var state domain.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.GameState{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return state, nil
}

// Save upserts the snapshot unless a newer or equal version is already stored
func (r *SnapshotRepository) Save(ctx context.Context, state domain.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO game_states (user_id, version, state, xp, level, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET version = EXCLUDED.version,
		    state = EXCLUDED.state,
		    xp = EXCLUDED.xp,
		    level = EXCLUDED.level,
		    updated_at = NOW()
		WHERE game_states.version < EXCLUDED.version
	`
	tag, err := r.db.Exec(ctx, query, state.UserID, int64(state.Version), raw, state.XP, state.Level)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s version %d", domain.ErrStaleSnapshot, state.UserID, state.Version)
	}
	return nil
}
