package progress

import (
	"fmt"
	"math"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// StartMission moves an available mission into progress.
type StartMission struct {
	MissionID string
}

func (a StartMission) apply(_ *Engine, s *domain.GameState, out *Outcome) error {
	idx := s.MissionIndex(a.MissionID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissionNotFound, a.MissionID)
	}

	switch s.Missions[idx].Status {
	case domain.MissionAvailable:
	case domain.MissionLocked:
		return fmt.Errorf("%w: %s", domain.ErrMissionLocked, a.MissionID)
	case domain.MissionInProgress, domain.MissionCompleted:
		return fmt.Errorf("%w: %s is already %s", domain.ErrInvalidTransition, a.MissionID, s.Missions[idx].Status)
	default:
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, s.Missions[idx].Status)
	}

	s.Missions[idx].Status = domain.MissionInProgress
	out.StartedMission = a.MissionID
	return nil
}

// MergeRemoteMissions folds the team-wide mission progress polled from the
// shared endpoint into the local missions. Remote data can only move a mission
// forward: status never regresses and current never decreases or passes target.
type MergeRemoteMissions struct {
	Remote map[string]domain.RemoteMission
}

func (a MergeRemoteMissions) apply(_ *Engine, s *domain.GameState, out *Outcome) error {
	for i := range s.Missions {
		m := &s.Missions[i]
		remote, ok := a.Remote[m.ID]
		if !ok {
			continue
		}
		wasCompleted := m.Status == domain.MissionCompleted

		if remote.Status.Valid() && remote.Status.Rank() > m.Status.Rank() {
			m.Status = remote.Status
		}
		if !math.IsNaN(remote.Current) && remote.Current > m.Current {
			m.Current = math.Min(m.Target, remote.Current)
		}
		if m.Current >= m.Target && m.Target > 0 && m.Status != domain.MissionCompleted {
			m.Status = domain.MissionCompleted
		}
		if !wasCompleted && m.Status == domain.MissionCompleted {
			out.CompletedMissions = append(out.CompletedMissions, m.ID)
		}
	}
	return nil
}

// unlockEligible promotes LOCKED missions whose prerequisites are all
// completed and returns their ids. With enforcement disabled every locked
// mission becomes available.
func (e *Engine) unlockEligible(s *domain.GameState) []string {
	var unlocked []string

	status := make(map[string]domain.MissionStatus, len(s.Missions))
	for _, m := range s.Missions {
		status[m.ID] = m.Status
	}

	for i := range s.Missions {
		m := &s.Missions[i]
		if m.Status != domain.MissionLocked {
			continue
		}
		if e.rules.EnforcePrerequisites && !prerequisitesMet(m.UnlockedBy, status) {
			continue
		}
		m.Status = domain.MissionAvailable
		unlocked = append(unlocked, m.ID)
	}
	return unlocked
}

// PrerequisitesMet reports whether every listed prerequisite of the mission is
// completed in s. Unknown ids never count as completed.
func PrerequisitesMet(s domain.GameState, missionID string) bool {
	idx := s.MissionIndex(missionID)
	if idx < 0 {
		return false
	}
	status := make(map[string]domain.MissionStatus, len(s.Missions))
	for _, m := range s.Missions {
		status[m.ID] = m.Status
	}
	return prerequisitesMet(s.Missions[idx].UnlockedBy, status)
}

func prerequisitesMet(ids []string, status map[string]domain.MissionStatus) bool {
	for _, id := range ids {
		if status[id] != domain.MissionCompleted {
			return false
		}
	}
	return true
}
