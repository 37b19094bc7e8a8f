package session

import (
	"context"
	"slices"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
	"github.com/osse101/Pokemonkey_Go/internal/team"
)

// Team summarizes the shared team sheet. When the endpoint cannot be reached
// the summary holds only the caller's own entry and is marked offline.
func (s *service) Team(ctx context.Context, userID string) (team.Summary, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return team.Summary{}, err
	}

	if members, ok := s.teamCache.Get(cacheKeyTeam); ok {
		return team.Summarize(members, true), nil
	}

	if s.cloud.Enabled() {
		members, err := s.cloud.TeamData(ctx)
		if err == nil {
			s.teamCache.Set(cacheKeyTeam, members)
			return team.Summarize(members, true), nil
		}
		logger.FromContext(ctx).Warn(LogMsgRemoteLookupFailed, "source", "team", "error", err)
	}

	return team.Summarize([]domain.TeamMember{team.SelfEntry(state)}, false), nil
}

// ActiveUsers lists the other foresters online in the shared habitat.
func (s *service) ActiveUsers(ctx context.Context, userID string) (ActiveUsersResult, error) {
	if _, err := s.lookup(userID); err != nil {
		return ActiveUsersResult{}, err
	}

	users, ok := s.usersCache.Get(cacheKeyActiveUsers)
	if !ok {
		if !s.cloud.Enabled() {
			return ActiveUsersResult{Users: []domain.ActiveUser{}}, nil
		}
		fetched, err := s.cloud.ActiveUsers(ctx)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgRemoteLookupFailed, "source", "active_users", "error", err)
			return ActiveUsersResult{Users: []domain.ActiveUser{}}, nil
		}
		s.usersCache.Set(cacheKeyActiveUsers, fetched)
		users = fetched
	}

	others := slices.DeleteFunc(slices.Clone(users), func(u domain.ActiveUser) bool {
		return u.UserID == userID
	})
	if others == nil {
		others = []domain.ActiveUser{}
	}
	return ActiveUsersResult{Users: others, Online: true}, nil
}
