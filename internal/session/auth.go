package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/Pokemonkey_Go/internal/cloud"
	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/event"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
	"github.com/osse101/Pokemonkey_Go/internal/metrics"
	"github.com/osse101/Pokemonkey_Go/internal/notify"
	"github.com/osse101/Pokemonkey_Go/internal/progress"
)

// Register creates an account on the shared endpoint.
func (s *service) Register(ctx context.Context, userID, password, fullName string) error {
	userID = cloud.NormalizeUserID(userID)
	fullName = strings.TrimSpace(fullName)
	if userID == "" || password == "" || fullName == "" {
		return fmt.Errorf("%w: user id, password and full name are required", domain.ErrInvalidInput)
	}
	if !s.cloud.Enabled() {
		return fmt.Errorf("%w: no endpoint configured", domain.ErrUnavailable)
	}

	if err := s.cloud.Post(ctx, cloud.NewRegisterPayload(userID, password, fullName)); err != nil {
		metrics.RecordSync(cloud.ActionRegister, metrics.OutcomeFailure)
		return err
	}
	metrics.RecordSync(cloud.ActionRegister, metrics.OutcomeSuccess)
	logger.FromContext(ctx).Info("Forester registered", "user_id", userID)
	return nil
}

// Login verifies credentials with the endpoint and seeds the returned profile
// into the user's session, creating it from the newest stored snapshot.
func (s *service) Login(ctx context.Context, userID, password string) (LoginResult, error) {
	userID = cloud.NormalizeUserID(userID)
	if userID == "" || password == "" {
		return LoginResult{}, fmt.Errorf("%w: user id and password are required", domain.ErrInvalidInput)
	}
	if !s.cloud.Enabled() {
		return LoginResult{}, fmt.Errorf("%w: no endpoint configured", domain.ErrUnavailable)
	}

	profile, err := s.cloud.Login(ctx, userID, password)
	if err != nil {
		return LoginResult{}, err
	}
	profile.UserID = cloud.NormalizeUserID(profile.UserID)
	if profile.UserID == "" {
		profile.UserID = userID
	}

	sess, err := s.openLocked(ctx, profile.UserID)
	if err != nil {
		return LoginResult{}, err
	}
	defer sess.mu.Unlock()

	next, _, err := s.apply(ctx, sess, progress.Login{Profile: profile, Market: s.catalog.Skins(), Now: s.clock()})
	if err != nil {
		return LoginResult{}, err
	}
	sess.online.Store(true)
	s.enqueue(sess, progressPush(next))
	s.publish(ctx, event.NewUserLoggedInEvent(next.UserID, next.FullName, next.Level))

	return LoginResult{
		State:   s.view(sess, next),
		Message: notify.WelcomeBack(next.FullName),
	}, nil
}

// openLocked opens the user's session and locks it, retrying when a
// concurrent logout closed the session it found.
func (s *service) openLocked(ctx context.Context, userID string) (*userSession, error) {
	for {
		sess, err := s.open(ctx, userID)
		if err != nil {
			return nil, err
		}
		sess.mu.Lock()
		if !sess.closed {
			return sess, nil
		}
		sess.mu.Unlock()
	}
}

// Logout closes the user's live session once any in-flight write has
// finished. The snapshot stays in the stores for the next login.
func (s *service) Logout(ctx context.Context, userID string) error {
	sess, err := s.lookup(userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return fmt.Errorf("%w: %s", domain.ErrNotLoggedIn, userID)
	}
	sess.closed = true
	sess.online.Store(false)

	s.mu.Lock()
	if s.sessions[userID] == sess {
		delete(s.sessions, userID)
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgSessionClosed, "user_id", userID)
	return nil
}
