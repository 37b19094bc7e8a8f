package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/logger"
)

// ResilientPublisher wraps a Bus so that a failing subscriber (a webhook that
// is down, for instance) is retried in the background and finally written to
// a dead-letter file instead of failing the caller's request.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	mu       sync.Mutex
	closed   bool
	wg       sync.WaitGroup
	shutdown chan struct{}
}

// NewResilientPublisher creates a ResilientPublisher writing exhausted events
// to deadLetterPath.
func NewResilientPublisher(inner Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	return &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dlw,
		shutdown:   make(chan struct{}),
	}, nil
}

// Publish delivers the event once synchronously. On failure it schedules
// background retries and returns nil.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.maxRetries)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.writeDeadLetter(event, 1, err)
		return nil
	}
	p.wg.Add(1)
	go p.retryLoop(event, err)
	return nil
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()

	// The request context is gone by now.
	ctx := context.Background()
	attempts := 1

	for i := 1; i <= p.maxRetries; i++ {
		timer := time.NewTimer(CalculateRetryDelay(p.baseDelay, i))
		select {
		case <-p.shutdown:
			timer.Stop()
			slog.Warn(LogMsgEventDroppedShutdown, "event_type", event.Type, "attempts", attempts)
			p.writeDeadLetter(event, attempts, lastErr)
			return
		case <-timer.C:
		}

		attempts++
		err := p.inner.Publish(ctx, event)
		if err == nil {
			slog.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", i)
			return
		}
		lastErr = err
		slog.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", i, "error", err)
	}

	slog.Error(LogMsgEventRetryExhausted, "event_type", event.Type, "attempts", attempts)
	p.writeDeadLetter(event, attempts, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(event Event, attempts int, lastErr error) {
	if err := p.deadLetter.Write(event, attempts, lastErr); err != nil {
		slog.Error(LogMsgDeadLetterWriteFailed, "event_type", event.Type, "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops pending retries, dead-letters their events and closes the
// dead-letter file. It returns ctx.Err() if the retries do not stop in time.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.shutdown)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		slog.Error(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
