package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// SubmitReport feeds the avatar with a field report.
type SubmitReport struct {
	ReportID string
	Draft    domain.ReportDraft
	Now      time.Time
}

func (a SubmitReport) apply(_ *Engine, s *domain.GameState, out *Outcome) error {
	idx := s.MissionIndex(a.Draft.MissionID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissionNotFound, a.Draft.MissionID)
	}
	mission := s.Missions[idx]
	if mission.Status != domain.MissionInProgress {
		return fmt.Errorf("%w: %s is %s", domain.ErrMissionNotActive, mission.ID, mission.Status)
	}

	qty := a.Draft.Quantity
	if qty <= 0 || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuantity, qty)
	}
	unit, err := ParseUnit(a.Draft.Unit)
	if err != nil {
		return err
	}
	value, err := Normalize(qty, unit, mission.CapacityPerDay)
	if err != nil {
		return err
	}
	xpGained := ReportXP(value)

	report := domain.FieldReport{
		ID:              a.ReportID,
		Timestamp:       a.Now,
		MissionID:       mission.ID,
		MissionTitle:    mission.Title,
		ActivityType:    a.Draft.ActivityType,
		DurationMinutes: a.Draft.DurationMinutes,
		RawQuantity:     qty,
		UnitType:        unit.String(),
		Achieved:        value,
		XPGained:        xpGained,
		Notes:           a.Draft.Notes,
		PhotoData:       a.Draft.PhotoData,
		UserID:          s.UserID,
		UserName:        s.FullName,
	}
	s.Reports = append([]domain.FieldReport{report}, s.Reports...)

	mission.Current = math.Min(mission.Target, mission.Current+value)
	if mission.Current >= mission.Target {
		mission.Status = domain.MissionCompleted
		out.CompletedMissions = append(out.CompletedMissions, mission.ID)
	}
	s.Missions[idx] = mission

	switch mission.Type {
	case domain.MissionLandPrep:
		s.ClearedArea = math.Min(s.TotalArea, s.ClearedArea+value)
	case domain.MissionPlanting:
		s.PlantedArea = math.Min(s.TotalArea, s.PlantedArea+value)
	case domain.MissionNursery:
	}

	s.XP += xpGained
	s.Stamina = domain.MaxStamina
	s.LastFeedingTime = a.Now
	s.Lives = math.Min(domain.MaxLives, math.Floor(s.Lives)+1)

	out.XPGained = xpGained
	out.Report = &report
	return nil
}
