package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/logger"
)

// ErrQueueFull is returned by TrySubmit when the job queue has no room.
var ErrQueueFull = errors.New("worker queue is full")

// ErrPoolStopped is returned when submitting to a stopped pool.
var ErrPoolStopped = errors.New("worker pool is stopped")

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Named is implemented by jobs that want a readable name in logs.
type Named interface {
	Name() string
}

type funcJob struct {
	name string
	fn   func(ctx context.Context) error
}

func (j funcJob) Process(ctx context.Context) error { return j.fn(ctx) }
func (j funcJob) Name() string                      { return j.name }

// NewJob wraps fn as a named Job.
func NewJob(name string, fn func(ctx context.Context) error) Job {
	return funcJob{name: name, fn: fn}
}

// Pool runs jobs on a fixed number of goroutines fed by a bounded queue.
type Pool struct {
	workers    int
	jobTimeout time.Duration
	jobQueue   chan Job

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
	quit    chan struct{}
}

// NewPool creates a new worker pool. Each job runs with jobTimeout if it is
// positive.
func NewPool(workers, queueSize int, jobTimeout time.Duration) *Pool {
	return &Pool{
		workers:    workers,
		jobTimeout: jobTimeout,
		jobQueue:   make(chan Job, queueSize),
		quit:       make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			// Drain what was accepted before Stop.
			for {
				select {
				case job := <-p.jobQueue:
					p.run(job)
				default:
					return
				}
			}
		}
	}
}

func (p *Pool) run(job Job) {
	ctx := context.Background()
	if p.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.jobTimeout)
		defer cancel()
	}

	if err := job.Process(ctx); err != nil {
		name := "anonymous"
		if n, ok := job.(Named); ok {
			name = n.Name()
		}
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", name, "error", err)
	}
}

// Enqueue adds a job to the queue, blocking while it is full. It gives up
// when ctx is done or the pool stops.
func (p *Pool) Enqueue(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrPoolStopped
	}
}

// TrySubmit adds a job without blocking.
func (p *Pool) TrySubmit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop refuses new jobs, lets the workers finish the queue and waits for them.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.quit)
	p.mu.Unlock()

	p.wg.Wait()
}
