package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/Pokemonkey_Go/internal/event"
	"github.com/osse101/Pokemonkey_Go/internal/server"
	"github.com/osse101/Pokemonkey_Go/internal/session"
	"github.com/osse101/Pokemonkey_Go/internal/worker"
)

// Stopper is a component stopped synchronously.
type Stopper interface {
	Stop()
}

// ShutdownComponents holds everything that needs a graceful stop. Nil
// fields are skipped.
type ShutdownComponents struct {
	Events      Stopper
	Server      *server.Server
	Scheduler   Stopper
	ShiftWorker *worker.ShiftStartWorker
	Sessions    session.Service
	Pool        Stopper
	Publisher   *event.ResilientPublisher
	Local       interface{ Close() error }
	Database    interface{ Close() }
	Tracing     func(context.Context) error
}

// GracefulShutdown stops components in dependency order:
//  0. event streams, which would otherwise hold the server open
//  1. HTTP server, so no new mutations arrive
//  2. timers that enqueue background work
//  3. sessions, whose snapshots are already persisted
//  4. the worker pool, draining queued cloud pushes
//  5. the event publisher, flushing pending retries
//  6. stores and exporters
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Events != nil {
		c.Events.Stop()
	}
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.ShiftWorker != nil {
		if err := c.ShiftWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgShiftWorkerFailed, "error", err)
		}
	}

	if c.Sessions != nil {
		if err := c.Sessions.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSessionsShutdownFailed, "error", err)
		}
	}

	if c.Pool != nil {
		c.Pool.Stop()
	}

	if c.Publisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.Publisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Local != nil {
		if err := c.Local.Close(); err != nil {
			slog.Error(LogMsgLocalStoreCloseFailed, "error", err)
		}
	}
	if c.Database != nil {
		c.Database.Close()
	}
	if c.Tracing != nil {
		if err := c.Tracing(ctx); err != nil {
			slog.Error(LogMsgTracingShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
