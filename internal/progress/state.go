package progress

import (
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// NewGameState builds the default state for a forester who has no saved
// snapshot. Mission statuses are initialized according to the engine rules.
func (e *Engine) NewGameState(missions []domain.Mission, pos domain.Position, now time.Time) domain.GameState {
	state := domain.GameState{
		Jabatan:         DefaultJabatan,
		StatusText:      DefaultStatusText,
		TotalArea:       domain.InitialTotalArea,
		Level:           1,
		Stamina:         domain.MaxStamina,
		LastFeedingTime: time.Time{},
		Lives:           domain.MaxLives,
		Missions:        make([]domain.Mission, len(missions)),
		Reports:         []domain.FieldReport{},
		MemoPlans:       []domain.WorkPlan{},
		OwnedSkins:      []string{domain.DefaultSkinID},
		ActiveSkinID:    domain.DefaultSkinID,
		AvatarPos:       pos,
	}

	for i, m := range missions {
		m.UnlockedBy = append([]string(nil), m.UnlockedBy...)
		m.Current = 0
		m.Status = domain.MissionAvailable
		if e.rules.EnforcePrerequisites && len(m.UnlockedBy) > 0 {
			m.Status = domain.MissionLocked
		}
		state.Missions[i] = m
	}
	e.unlockEligible(&state)
	state.Stamina = Stamina(state.LastFeedingTime, now)

	return state
}
