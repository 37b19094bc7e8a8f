package repository

import (
	"context"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// Snapshot stores whole GameState snapshots keyed by user id.
type Snapshot interface {
	// Load returns the stored snapshot or domain.ErrSnapshotNotFound.
	Load(ctx context.Context, userID string) (domain.GameState, error)
	// Save replaces the stored snapshot when state.Version is newer than the
	// stored one; otherwise it writes nothing and returns domain.ErrStaleSnapshot.
	Save(ctx context.Context, state domain.GameState) error
}
