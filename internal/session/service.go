// Package session owns the live GameState of every logged-in forester. Each
// user's state has a single writer: an operation loads, reduces, persists and
// publishes while holding that user's lock.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/catalog"
	"github.com/osse101/Pokemonkey_Go/internal/cloudsync"
	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/event"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
	"github.com/osse101/Pokemonkey_Go/internal/metrics"
	"github.com/osse101/Pokemonkey_Go/internal/progress"
	"github.com/osse101/Pokemonkey_Go/internal/repository"
)

// Dependencies are the collaborators of the session service. Shared, Reports
// and Bus are optional.
type Dependencies struct {
	Engine  *progress.Engine
	Catalog *catalog.Catalog
	Local   repository.Snapshot
	Shared  repository.Snapshot
	Reports repository.Report
	Cloud   CloudClient
	Jobs    JobSubmitter
	Bus     event.Bus
}

type userSession struct {
	mu     sync.Mutex
	state  domain.GameState
	closed bool
	online atomic.Bool
	outbox outbox
}

type service struct {
	engine  *progress.Engine
	catalog *catalog.Catalog
	local   repository.Snapshot
	shared  repository.Snapshot
	reports repository.Report
	cloud   CloudClient
	jobs    JobSubmitter
	bus     event.Bus
	syncer  *cloudsync.Syncer

	loc         *time.Location
	syncTimeout time.Duration
	spawn       func() domain.Position
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*userSession

	teamCache  *remoteCache[[]domain.TeamMember]
	usersCache *remoteCache[[]domain.ActiveUser]
}

// NewService creates the session service.
func NewService(deps Dependencies, cfg Config) Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = DefaultSyncTimeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.SpawnPosition == nil {
		cfg.SpawnPosition = randomSpawn
	}

	s := &service{
		engine:      deps.Engine,
		catalog:     deps.Catalog,
		local:       deps.Local,
		shared:      deps.Shared,
		reports:     deps.Reports,
		cloud:       deps.Cloud,
		jobs:        deps.Jobs,
		bus:         deps.Bus,
		loc:         cfg.Location,
		syncTimeout: cfg.SyncTimeout,
		spawn:       cfg.SpawnPosition,
		now:         time.Now,
		sessions:    make(map[string]*userSession),
		teamCache:   newRemoteCache[[]domain.TeamMember](cfg.CacheSize, cfg.CacheTTL),
		usersCache:  newRemoteCache[[]domain.ActiveUser](cfg.CacheSize, cfg.CacheTTL),
	}
	s.syncer = cloudsync.New(deps.Cloud, s.setOnline)
	return s
}

func randomSpawn() domain.Position {
	return domain.Position{
		X:      spawnMinX + rand.Float64()*spawnSpanX,
		Y:      spawnMinY + rand.Float64()*spawnSpanY,
		Facing: spawnFacing,
	}
}

// clock returns the current time in the game time zone.
func (s *service) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *service) lookup(userID string) (*userSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotLoggedIn, userID)
	}
	return sess, nil
}

func (s *service) all() []*userSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*userSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// open returns the user's session, loading the newest stored snapshot when
// none is live.
func (s *service) open(ctx context.Context, userID string) (*userSession, error) {
	if sess, err := s.lookup(userID); err == nil {
		return sess, nil
	}

	state, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}
	sess := &userSession{state: state}
	s.sessions[userID] = sess
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	logger.FromContext(ctx).Info(LogMsgSessionLoaded, "user_id", userID, "version", state.Version)
	return sess, nil
}

func (s *service) loadState(ctx context.Context, userID string) (domain.GameState, error) {
	state, err := s.local.Load(ctx, userID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		return domain.GameState{}, fmt.Errorf("load local snapshot: %w", err)
	}

	if s.shared != nil {
		logger.FromContext(ctx).Debug(LogMsgSnapshotFallback, "user_id", userID)
		state, err = s.shared.Load(ctx, userID)
		if err == nil {
			return state, nil
		}
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			return domain.GameState{}, fmt.Errorf("load shared snapshot: %w", err)
		}
	}

	state = s.engine.NewGameState(s.catalog.Missions(), s.spawn(), s.clock())
	state.UserID = userID
	return state, nil
}

// persist writes the snapshot to the device-local store, which must succeed,
// then mirrors it to the shared store.
func (s *service) persist(ctx context.Context, state domain.GameState) error {
	if err := s.local.Save(ctx, state); err != nil {
		return fmt.Errorf("save local snapshot: %w", err)
	}
	if s.shared != nil {
		if err := s.shared.Save(ctx, state); err != nil && !errors.Is(err, domain.ErrStaleSnapshot) {
			logger.FromContext(ctx).Warn(LogMsgSharedSaveFailed, "user_id", state.UserID, "error", err)
		}
	}
	return nil
}

// apply reduces action against the user's state and persists the result as
// one critical section. Callers must hold sess.mu. A session closed by logout
// never writes again, so a later login owns the snapshot alone.
func (s *service) apply(ctx context.Context, sess *userSession, action progress.Action) (domain.GameState, progress.Outcome, error) {
	if sess.closed {
		return domain.GameState{}, progress.Outcome{}, fmt.Errorf("%w: %s", domain.ErrNotLoggedIn, sess.state.UserID)
	}
	next, out, err := s.engine.Reduce(sess.state, action)
	if err != nil {
		return domain.GameState{}, progress.Outcome{}, err
	}
	if err := s.persist(ctx, next); err != nil {
		return domain.GameState{}, progress.Outcome{}, err
	}
	sess.state = next
	return next, out, nil
}

// view is the state as shown to the client: stamina as of now and the
// session's connectivity flag.
func (s *service) view(sess *userSession, state domain.GameState) domain.GameState {
	v := state.Clone()
	v.Stamina = progress.Stamina(v.LastFeedingTime, s.clock())
	v.IsOnline = sess.online.Load()
	return v
}

func (s *service) setOnline(userID string, online bool) {
	if sess, err := s.lookup(userID); err == nil {
		sess.online.Store(online)
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}

func (s *service) publishOutcome(ctx context.Context, state domain.GameState, out progress.Outcome) {
	for _, id := range out.CompletedMissions {
		s.publish(ctx, event.NewMissionCompletedEvent(state.UserID, state.FullName, id, missionTitle(state, id)))
	}
	for _, id := range out.UnlockedMissions {
		s.publish(ctx, event.NewMissionUnlockedEvent(state.UserID, id, missionTitle(state, id)))
	}
	if out.LeveledUp() {
		s.publish(ctx, event.NewLevelUpEvent(state.UserID, state.FullName, out.OldLevel, out.NewLevel, state.XP))
	}
}

func missionTitle(state domain.GameState, id string) string {
	if i := state.MissionIndex(id); i >= 0 {
		return state.Missions[i].Title
	}
	return id
}

// ActiveSessionCount returns the number of live sessions.
func (s *service) ActiveSessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown closes every live session. Snapshots are already persisted after
// each change.
func (s *service) Shutdown(ctx context.Context) error {
	for _, sess := range s.all() {
		sess.mu.Lock()
		sess.closed = true
		sess.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.sessions {
		logger.FromContext(ctx).Info(LogMsgSessionClosed, "user_id", id)
	}
	s.sessions = make(map[string]*userSession)
	metrics.ActiveSessions.Set(0)
	return nil
}
