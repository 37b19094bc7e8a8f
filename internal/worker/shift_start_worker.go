package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/logger"
	"github.com/osse101/Pokemonkey_Go/internal/progress"
)

// ShiftStartFunc runs once each day when the shift starts.
type ShiftStartFunc func(ctx context.Context) error

// ShiftStartWorker fires at the daily stamina anchor (07:00 in the game time
// zone) so every loaded session shows a full bar the moment the shift begins
// instead of waiting for the next periodic tick.
type ShiftStartWorker struct {
	loc      *time.Location
	onStart  ShiftStartFunc
	now      func() time.Time
	timer    *time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewShiftStartWorker creates a ShiftStartWorker for loc.
func NewShiftStartWorker(loc *time.Location, onStart ShiftStartFunc) *ShiftStartWorker {
	return &ShiftStartWorker{
		loc:      loc,
		onStart:  onStart,
		now:      time.Now,
		shutdown: make(chan struct{}),
	}
}

// Start schedules the first run
func (w *ShiftStartWorker) Start() {
	w.scheduleNext()
}

func (w *ShiftStartWorker) scheduleNext() {
	duration := timeUntilNextShift(w.now(), w.loc)
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdown:
		return
	default:
	}

	if w.timer != nil {
		w.timer.Stop()
	}

	// Long waits wake up early and re-measure so clock jumps do not fire late.
	if duration > time.Hour {
		wait := duration - ShiftStartStandbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgShiftStartStandby, "next_check_in", wait.String())
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Early trigger: reschedule for the remainder.
		rem := timeUntilNextShift(w.now(), w.loc)
		if rem > ShiftStartJitterTolerance && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.execute()
		w.scheduleNext()
	})
	log.Info(LogMsgShiftStartScheduled, "next_shift_in", duration.String())
}

func (w *ShiftStartWorker) execute() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgShiftStartRunning)

		if err := w.onStart(ctx); err != nil {
			log.Error(LogMsgShiftStartFailed, "error", err)
			return
		}
		log.Info(LogMsgShiftStartCompleted)
	}()
}

// Shutdown cancels the pending timer and waits for an in-flight run.
func (w *ShiftStartWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)

	w.mu.Lock()
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Shift start worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Shift start worker shutdown timeout")
		return ctx.Err()
	}
}

// timeUntilNextShift returns the duration until the next shift start in loc.
func timeUntilNextShift(now time.Time, loc *time.Location) time.Duration {
	local := now.In(loc)
	next := progress.ShiftStart(local)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1,
			progress.ShiftStartHour, 0, 0, 0, loc)
	}
	return next.Sub(local)
}
