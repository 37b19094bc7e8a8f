package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/osse101/Pokemonkey_Go/internal/cloud"
	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/event"
	"github.com/osse101/Pokemonkey_Go/internal/metrics"
	"github.com/osse101/Pokemonkey_Go/internal/worker"
)

// maxOutbox bounds the undelivered pushes kept per user.
const maxOutbox = 64

// push is one POST waiting to leave. Versioned pushes carry a snapshot and go
// through the sync guard; status pushes do not.
type push struct {
	state     domain.GameState
	payload   cloud.Payload
	versioned bool
}

// outbox delivers a user's pushes one at a time in the order they were queued.
// At most one drain job per user is in the worker pool.
type outbox struct {
	mu       sync.Mutex
	items    []push
	draining bool
}

// enqueue queues pushes for delivery. Callers hold sess.mu so queue order
// matches snapshot order.
func (s *service) enqueue(sess *userSession, pushes ...push) {
	if !s.cloud.Enabled() || len(pushes) == 0 {
		return
	}

	ob := &sess.outbox
	ob.mu.Lock()
	defer ob.mu.Unlock()

	ob.items = append(ob.items, pushes...)
	if over := len(ob.items) - maxOutbox; over > 0 {
		for _, dropped := range ob.items[:over] {
			slog.Warn(LogMsgSyncDropped, "user_id", dropped.state.UserID, "action", dropped.payload.ActionName(), "reason", "outbox full")
			metrics.RecordSync(dropped.payload.ActionName(), metrics.OutcomeFailure)
		}
		ob.items = append([]push(nil), ob.items[over:]...)
	}
	if ob.draining {
		return
	}

	job := worker.NewJob("cloud.drain", func(ctx context.Context) error {
		s.drain(ctx, ob)
		return nil
	})
	if err := s.jobs.TrySubmit(job); err != nil {
		// Items stay queued; the next enqueue tries again.
		slog.Warn(LogMsgSyncDropped, "user_id", sess.state.UserID, "error", err)
		return
	}
	ob.draining = true
}

func (s *service) drain(ctx context.Context, ob *outbox) {
	for {
		ob.mu.Lock()
		if len(ob.items) == 0 {
			ob.draining = false
			ob.mu.Unlock()
			return
		}
		p := ob.items[0]
		ob.items = ob.items[1:]
		ob.mu.Unlock()

		s.deliver(ctx, p)
	}
}

func (s *service) deliver(ctx context.Context, p push) {
	ctx, cancel := context.WithTimeout(ctx, s.syncTimeout)
	defer cancel()

	action := p.payload.ActionName()
	var err error
	if p.versioned {
		err = s.syncer.PushPayload(ctx, p.state, p.payload)
	} else {
		err = s.cloud.Post(ctx, p.payload)
		s.setOnline(p.state.UserID, err == nil)
	}

	switch {
	case err == nil:
		metrics.RecordSync(action, metrics.OutcomeSuccess)
	case errors.Is(err, domain.ErrStaleSnapshot):
		metrics.RecordSync(action, metrics.OutcomeStale)
	default:
		metrics.RecordSync(action, metrics.OutcomeFailure)
		s.publish(ctx, event.NewSyncFailedEvent(p.state.UserID, action, p.state.Version, err))
	}
}

func progressPush(state domain.GameState) push {
	return push{state: state, payload: cloud.NewProgressPayload(state), versioned: true}
}

func reportPush(state domain.GameState, report domain.FieldReport) push {
	return push{state: state, payload: cloud.NewReportPayload(state, report), versioned: true}
}

func statusPush(state domain.GameState, missionID string, status domain.MissionStatus) push {
	return push{state: state, payload: cloud.NewMissionStatusPayload(missionID, status)}
}
