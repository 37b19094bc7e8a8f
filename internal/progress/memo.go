package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

const (
	planDateLayout = "2006-01-02"
	planTimeLayout = "15:04"
)

// AddPlan prepends a work plan to the memo.
type AddPlan struct {
	Plan domain.WorkPlan
}

func (a AddPlan) apply(_ *Engine, s *domain.GameState, out *Outcome) error {
	plan := a.Plan
	plan.Description = strings.TrimSpace(plan.Description)
	if err := ValidatePlan(plan); err != nil {
		return err
	}
	for _, p := range s.MemoPlans {
		if p.ID == plan.ID {
			return fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidPlan, plan.ID)
		}
	}

	s.MemoPlans = append([]domain.WorkPlan{plan}, s.MemoPlans...)
	out.Plan = &plan
	return nil
}

// TogglePlan flips a plan's done flag.
type TogglePlan struct {
	PlanID string
}

func (a TogglePlan) apply(_ *Engine, s *domain.GameState, out *Outcome) error {
	for i := range s.MemoPlans {
		if s.MemoPlans[i].ID == a.PlanID {
			s.MemoPlans[i].IsDone = !s.MemoPlans[i].IsDone
			plan := s.MemoPlans[i]
			out.Plan = &plan
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrPlanNotFound, a.PlanID)
}

// DeletePlan removes a plan from the memo.
type DeletePlan struct {
	PlanID string
}

func (a DeletePlan) apply(_ *Engine, s *domain.GameState, _ *Outcome) error {
	for i := range s.MemoPlans {
		if s.MemoPlans[i].ID == a.PlanID {
			s.MemoPlans = append(s.MemoPlans[:i], s.MemoPlans[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrPlanNotFound, a.PlanID)
}

// ValidatePlan checks the memo entry's fields.
func ValidatePlan(p domain.WorkPlan) error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidPlan)
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidPlan)
	}
	if _, err := time.Parse(planDateLayout, p.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidPlan)
	}
	start, err := time.Parse(planTimeLayout, p.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start time must be HH:mm", domain.ErrInvalidPlan)
	}
	end, err := time.Parse(planTimeLayout, p.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end time must be HH:mm", domain.ErrInvalidPlan)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidPlan)
	}
	return nil
}
