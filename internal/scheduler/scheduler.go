package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/worker"
)

type entry struct {
	name     string
	interval time.Duration
	job      worker.Job
}

// Scheduler feeds jobs into a worker pool at fixed intervals.
type Scheduler struct {
	workerPool *worker.Pool
	entries    []entry
	started    bool
	mu         sync.Mutex
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run every interval. Jobs registered after Start
// begin immediately.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{name: name, interval: interval, job: job}
	s.entries = append(s.entries, e)
	if s.started {
		s.run(e)
	}
}

// Start begins every registered schedule
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	for _, e := range s.entries {
		s.run(e)
	}
}

func (s *Scheduler) run(e entry) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// A full queue skips this tick; the next one catches up.
				if err := s.workerPool.TrySubmit(e.job); err != nil {
					slog.Warn("Scheduled job skipped", "job", e.name, "error", err)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.mu.Lock()
	select {
	case <-s.quit:
	default:
		close(s.quit)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
