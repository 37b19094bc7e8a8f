package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
	"github.com/osse101/Pokemonkey_Go/internal/progress"
)

// TickAll recomputes stamina for every live session, persists it and sends a
// heartbeat so the shared habitat sees the avatar.
func (s *service) TickAll(ctx context.Context) error {
	now := s.clock()
	var errs []error
	for _, sess := range s.all() {
		if err := s.tick(ctx, sess, now); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *service) tick(ctx context.Context, sess *userSession, now time.Time) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return nil
	}
	next, _, err := s.apply(ctx, sess, progress.Tick{Now: now})
	if err != nil {
		return fmt.Errorf("tick %s: %w", sess.state.UserID, err)
	}
	s.enqueue(sess, progressPush(next))
	return nil
}

// PollGlobalMissions merges team-wide mission progress into every live
// session.
func (s *service) PollGlobalMissions(ctx context.Context) error {
	if !s.cloud.Enabled() {
		return nil
	}

	remote, err := s.cloud.GlobalMissions(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgGlobalMissionsFailed, "error", err)
		return err
	}
	if len(remote) == 0 {
		return nil
	}

	var errs []error
	for _, sess := range s.all() {
		if err := s.merge(ctx, sess, remote); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *service) merge(ctx context.Context, sess *userSession, remote map[string]domain.RemoteMission) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return nil
	}
	next, out, err := s.apply(ctx, sess, progress.MergeRemoteMissions{Remote: remote})
	if err != nil {
		return fmt.Errorf("merge missions for %s: %w", sess.state.UserID, err)
	}
	s.publishOutcome(ctx, next, out)
	return nil
}
