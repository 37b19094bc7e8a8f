// Package cloudsync pushes progress snapshots to the shared endpoint without
// ever letting an older snapshot overwrite a newer one from this process.
package cloudsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/osse101/Pokemonkey_Go/internal/cloud"
	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
)

// Poster sends a payload to the endpoint.
type Poster interface {
	Post(ctx context.Context, payload cloud.Payload) error
}

// StatusFunc is told whether the last push for a user reached the endpoint.
type StatusFunc func(userID string, online bool)

// Syncer is the versioned push task. For each user it remembers the highest
// snapshot version handed to the wire and drops anything not newer. Pushes for
// one user are serialized so requests leave in version order.
type Syncer struct {
	poster   Poster
	onStatus StatusFunc

	mu     sync.Mutex
	guards map[string]*guard
}

type guard struct {
	mu   sync.Mutex
	sent uint64
	used bool
}

// New creates a Syncer. onStatus may be nil.
func New(poster Poster, onStatus StatusFunc) *Syncer {
	return &Syncer{
		poster:   poster,
		onStatus: onStatus,
		guards:   make(map[string]*guard),
	}
}

// Push sends an updateProgress for state. A state whose version is not
// greater than the last one pushed for the user is discarded with
// domain.ErrStaleSnapshot and nothing is sent.
func (s *Syncer) Push(ctx context.Context, state domain.GameState) error {
	return s.PushPayload(ctx, state, cloud.NewProgressPayload(state))
}

// PushPayload is Push with a caller-built payload, such as an addReport that
// carries the same progress fields.
func (s *Syncer) PushPayload(ctx context.Context, state domain.GameState, payload cloud.Payload) error {
	g := s.guard(state.UserID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.used && state.Version <= g.sent {
		return fmt.Errorf("%w: user %s version %d", domain.ErrStaleSnapshot, state.UserID, state.Version)
	}
	g.sent, g.used = state.Version, true

	err := s.poster.Post(ctx, payload)
	if err != nil {
		logger.FromContext(ctx).Warn("Cloud sync failed",
			"user_id", state.UserID, "version", state.Version, "action", payload.ActionName(), "error", err)
	} else {
		slog.Default().Debug("Cloud sync sent", "user_id", state.UserID, "version", state.Version, "action", payload.ActionName())
	}

	if s.onStatus != nil {
		s.onStatus(state.UserID, err == nil)
	}
	return err
}

// LastVersion returns the highest version pushed for userID.
func (s *Syncer) LastVersion(userID string) uint64 {
	g := s.guard(userID)
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sent
}

func (s *Syncer) guard(userID string) *guard {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guards[userID]
	if !ok {
		g = &guard{}
		s.guards[userID] = g
	}
	return g
}
