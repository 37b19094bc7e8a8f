package progress

import (
	"fmt"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// Rules are the product switches the reducer honors.
type Rules struct {
	// EnforcePrerequisites keeps missions LOCKED until every mission listed in
	// their UnlockedBy has been completed.
	EnforcePrerequisites bool
}

// DefaultRules returns the rules used when nothing is configured.
func DefaultRules() Rules {
	return Rules{EnforcePrerequisites: true}
}

// Action is one state transition. The set of actions is closed to this package.
type Action interface {
	apply(e *Engine, s *domain.GameState, out *Outcome) error
}

// Outcome describes what a reduction changed, for events, metrics and replies.
type Outcome struct {
	XPGained          int
	Report            *domain.FieldReport
	StartedMission    string
	CompletedMissions []string
	UnlockedMissions  []string
	OldLevel          int
	NewLevel          int
	Skin              *domain.Skin
	Plan              *domain.WorkPlan
}

// LeveledUp reports whether the reduction crossed a level boundary.
func (o Outcome) LeveledUp() bool {
	return o.NewLevel > o.OldLevel
}

// Engine applies actions to game state snapshots.
type Engine struct {
	rules Rules
}

// NewEngine creates an Engine with the given rules.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine's configured rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Reduce applies action to state and returns the next snapshot. The input is
// never modified; on error the returned state equals the input.
func (e *Engine) Reduce(state domain.GameState, action Action) (domain.GameState, Outcome, error) {
	if action == nil {
		return state, Outcome{}, fmt.Errorf("%w: nil action", domain.ErrUnsupportedAction)
	}

	next := state.Clone()
	out := Outcome{OldLevel: state.Level}

	if err := action.apply(e, &next, &out); err != nil {
		return state, Outcome{}, err
	}

	out.UnlockedMissions = e.unlockEligible(&next)
	next.Level = domain.LevelForXP(next.XP)
	out.NewLevel = next.Level
	next.Version = state.Version + 1

	return next, out, nil
}
