package progress

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

func testMissions() []domain.Mission {
	return []domain.Mission{
		{ID: "m1", Title: "Land Clearing", Type: domain.MissionLandPrep, Target: 150},
		{ID: "m2", Title: "Seedling Nursery", Type: domain.MissionNursery, Target: 1000, CapacityPerDay: 100},
		{ID: "m3", Title: "Planting", Type: domain.MissionPlanting, Target: 150, UnlockedBy: []string{"m1", "m2"}},
	}
}

func newTestState(t *testing.T, e *Engine) domain.GameState {
	t.Helper()
	s := e.NewGameState(testMissions(), domain.Position{X: 50, Y: 50, Facing: "right"}, at(9, 0))
	s.UserID = "u1"
	s.FullName = "Siti Aminah"
	return s
}

func mustReduce(t *testing.T, e *Engine, s domain.GameState, a Action) (domain.GameState, Outcome) {
	t.Helper()
	next, out, err := e.Reduce(s, a)
	require.NoError(t, err)
	return next, out
}

func report(missionID string, qty float64, unit string) SubmitReport {
	return SubmitReport{
		ReportID: fmt.Sprintf("r-%s-%v-%s", missionID, qty, unit),
		Draft:    domain.ReportDraft{MissionID: missionID, Quantity: qty, Unit: unit, ActivityType: "Land clearing"},
		Now:      at(14, 0),
	}
}

func TestNewGameState(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)

	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 5.0, s.Lives)
	assert.Equal(t, 150.0, s.TotalArea)
	assert.Equal(t, []string{domain.DefaultSkinID}, s.OwnedSkins)
	assert.Equal(t, domain.DefaultSkinID, s.ActiveSkinID)
	assert.Equal(t, domain.MissionAvailable, s.Missions[0].Status)
	assert.Equal(t, domain.MissionAvailable, s.Missions[1].Status)
	assert.Equal(t, domain.MissionLocked, s.Missions[2].Status)
	assert.InDelta(t, 100-2*100.0/18, s.Stamina, 1e-9)

	t.Run("without prerequisite enforcement everything is available", func(t *testing.T) {
		s := NewEngine(Rules{}).NewGameState(testMissions(), domain.Position{}, at(9, 0))
		for _, m := range s.Missions {
			assert.Equal(t, domain.MissionAvailable, m.Status, m.ID)
		}
	})
}

func TestReduce_EndToEndScenario(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)
	s.XP = 0
	s.Lives = 3
	s.Stamina = 12
	s, _ = mustReduce(t, e, s, StartMission{MissionID: "m1"})

	next, out := mustReduce(t, e, s, report("m1", 10, "hari"))

	assert.Equal(t, 666, out.XPGained)
	assert.Equal(t, 666, next.XP)
	assert.Equal(t, 1, next.Level)
	assert.InDelta(t, 16.6, next.ClearedArea, 1e-9)
	assert.Equal(t, 0.0, next.PlantedArea)
	assert.InDelta(t, 16.6, next.Missions[0].Current, 1e-9)
	assert.Equal(t, domain.MissionInProgress, next.Missions[0].Status)
	assert.Equal(t, 4.0, next.Lives)
	assert.Equal(t, 100.0, next.Stamina)
	assert.Equal(t, at(14, 0), next.LastFeedingTime)

	require.Len(t, next.Reports, 1)
	r := next.Reports[0]
	assert.InDelta(t, 16.6, r.Achieved, 1e-9)
	assert.Equal(t, 10.0, r.RawQuantity)
	assert.Equal(t, "hari", r.UnitType)
	assert.Equal(t, "Land Clearing", r.MissionTitle)
	assert.Equal(t, "u1", r.UserID)
	assert.Equal(t, "Siti Aminah", r.UserName)
	assert.Equal(t, 666, r.XPGained)
	assert.Equal(t, &r, out.Report)
}

func TestReduce_CompletionScenario(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)
	s.Missions[0].Target = 10
	s.Missions[0].Current = 9
	s.Missions[0].Status = domain.MissionInProgress

	next, out := mustReduce(t, e, s, report("m1", 5, "ha"))

	assert.Equal(t, 10.0, next.Missions[0].Current)
	assert.Equal(t, domain.MissionCompleted, next.Missions[0].Status)
	assert.Equal(t, []string{"m1"}, out.CompletedMissions)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)
	s, _ = mustReduce(t, e, s, StartMission{MissionID: "m1"})
	before := s.Clone()

	next, _ := mustReduce(t, e, s, report("m1", 3, "ha"))

	assert.Equal(t, before, s)
	assert.NotEqual(t, s.Missions[0].Current, next.Missions[0].Current)
	assert.Equal(t, s.Version+1, next.Version)
}

func TestReduce_ReportRejections(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)
	s, _ = mustReduce(t, e, s, StartMission{MissionID: "m1"})

	tests := []struct {
		name    string
		action  SubmitReport
		wantErr error
	}{
		{"unknown mission", report("nope", 1, "ha"), domain.ErrMissionNotFound},
		{"mission not started", report("m2", 1, "bibit"), domain.ErrMissionNotActive},
		{"locked mission", report("m3", 1, "ha"), domain.ErrMissionNotActive},
		{"zero quantity", report("m1", 0, "ha"), domain.ErrInvalidQuantity},
		{"negative quantity", report("m1", -2, "ha"), domain.ErrInvalidQuantity},
		{"unknown unit", report("m1", 1, "acre"), domain.ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, out, err := e.Reduce(s, tt.action)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, s, next)
			assert.Equal(t, Outcome{}, out)
		})
	}

	t.Run("nil action", func(t *testing.T) {
		_, _, err := e.Reduce(s, nil)
		assert.ErrorIs(t, err, domain.ErrUnsupportedAction)
	})
}

func TestReduce_AreaPerMissionType(t *testing.T) {
	e := NewEngine(Rules{})
	s := newTestState(t, NewEngine(Rules{}))
	for _, id := range []string{"m1", "m2", "m3"} {
		s, _ = mustReduce(t, e, s, StartMission{MissionID: id})
	}

	s, _ = mustReduce(t, e, s, report("m2", 300, "bibit"))
	assert.Equal(t, 0.0, s.ClearedArea)
	assert.Equal(t, 0.0, s.PlantedArea)

	s, _ = mustReduce(t, e, s, report("m3", 20, "ha"))
	assert.Equal(t, 20.0, s.PlantedArea)

	s, _ = mustReduce(t, e, s, report("m1", 5000, "meter"))
	assert.Equal(t, 0.5, s.ClearedArea)

	s.TotalArea = 10
	s, _ = mustReduce(t, e, s, report("m1", 40, "ha"))
	assert.Equal(t, 10.0, s.ClearedArea)
}

func TestReduce_LivesCap(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)
	s, _ = mustReduce(t, e, s, StartMission{MissionID: "m1"})

	tests := []struct {
		start float64
		want  float64
	}{
		{0, 1},
		{2.7, 3},
		{4.2, 5},
		{5, 5},
	}
	for _, tt := range tests {
		s.Lives = tt.start
		next, _ := mustReduce(t, e, s, report("m1", 0.1, "ha"))
		assert.Equal(t, tt.want, next.Lives, "start %v", tt.start)
	}

	s.Lives = 0
	for i := 0; i < 12; i++ {
		s, _ = mustReduce(t, e, s, report("m1", 0.1, "ha"))
		assert.LessOrEqual(t, s.Lives, 5.0)
	}
	assert.Equal(t, 5.0, s.Lives)
}

func TestReduce_RandomReportSequenceInvariants(t *testing.T) {
	e := NewEngine(Rules{})
	s := newTestState(t, e)
	for _, id := range []string{"m1", "m2", "m3"} {
		s, _ = mustReduce(t, e, s, StartMission{MissionID: id})
	}

	rng := rand.New(rand.NewSource(7))
	units := []string{"ha", "bibit", "jam", "hari", "orang", "meter"}
	ids := []string{"m1", "m2", "m3"}

	for i := 0; i < 500; i++ {
		id := ids[rng.Intn(len(ids))]
		idx := s.MissionIndex(id)
		if s.Missions[idx].Status == domain.MissionCompleted {
			continue
		}
		prev := s
		next, out := mustReduce(t, e, s, report(id, rng.Float64()*20+0.01, units[rng.Intn(len(units))]))

		for j, m := range next.Missions {
			assert.LessOrEqual(t, m.Current, m.Target)
			assert.GreaterOrEqual(t, m.Current, prev.Missions[j].Current)
			assert.GreaterOrEqual(t, m.Status.Rank(), prev.Missions[j].Status.Rank())
		}
		assert.GreaterOrEqual(t, next.XP, prev.XP)
		assert.Equal(t, prev.XP+out.XPGained, next.XP)
		assert.Equal(t, next.XP/1000+1, next.Level)
		assert.LessOrEqual(t, next.ClearedArea, next.TotalArea)
		assert.LessOrEqual(t, next.PlantedArea, next.TotalArea)
		assert.LessOrEqual(t, next.Lives, 5.0)
		assert.Equal(t, len(prev.Reports)+1, len(next.Reports))
		assert.Equal(t, prev.Version+1, next.Version)
		s = next
	}
}

func TestReduce_LevelUp(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)
	s, _ = mustReduce(t, e, s, StartMission{MissionID: "m1"})
	s.XP = 900
	s.Level = 1

	next, out := mustReduce(t, e, s, report("m1", 1, "ha"))
	assert.Equal(t, 1410, next.XP)
	assert.Equal(t, 2, next.Level)
	assert.True(t, out.LeveledUp())
	assert.Equal(t, 1, out.OldLevel)
	assert.Equal(t, 2, out.NewLevel)
}

func TestStartMission(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)

	next, out := mustReduce(t, e, s, StartMission{MissionID: "m1"})
	assert.Equal(t, domain.MissionInProgress, next.Missions[0].Status)
	assert.Equal(t, "m1", out.StartedMission)

	_, _, err := e.Reduce(next, StartMission{MissionID: "m1"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, _, err = e.Reduce(next, StartMission{MissionID: "m3"})
	assert.ErrorIs(t, err, domain.ErrMissionLocked)

	_, _, err = e.Reduce(next, StartMission{MissionID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrMissionNotFound)
}

func TestUnlockGating(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)
	s, _ = mustReduce(t, e, s, StartMission{MissionID: "m1"})
	s, _ = mustReduce(t, e, s, StartMission{MissionID: "m2"})

	s, out := mustReduce(t, e, s, report("m1", 150, "ha"))
	assert.Equal(t, domain.MissionCompleted, s.Missions[0].Status)
	assert.Empty(t, out.UnlockedMissions)
	assert.Equal(t, domain.MissionLocked, s.Missions[2].Status)
	assert.False(t, PrerequisitesMet(s, "m3"))

	s, out = mustReduce(t, e, s, report("m2", 1000, "bibit"))
	assert.Equal(t, []string{"m3"}, out.UnlockedMissions)
	assert.Equal(t, domain.MissionAvailable, s.Missions[2].Status)
	assert.True(t, PrerequisitesMet(s, "m3"))

	t.Run("unknown prerequisite keeps mission locked", func(t *testing.T) {
		missions := []domain.Mission{{ID: "x", Target: 1, UnlockedBy: []string{"missing"}}}
		s := e.NewGameState(missions, domain.Position{}, at(9, 0))
		assert.Equal(t, domain.MissionLocked, s.Missions[0].Status)
	})
}

func TestMergeRemoteMissions(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)
	s, _ = mustReduce(t, e, s, StartMission{MissionID: "m1"})
	s, _ = mustReduce(t, e, s, report("m1", 30, "ha"))

	next, out := mustReduce(t, e, s, MergeRemoteMissions{Remote: map[string]domain.RemoteMission{
		"m1": {Status: domain.MissionAvailable, Current: 10},
		"m2": {Status: domain.MissionInProgress, Current: 400},
		"m3": {Status: "BOGUS", Current: 2},
	}})

	assert.Equal(t, domain.MissionInProgress, next.Missions[0].Status, "status never regresses")
	assert.Equal(t, 30.0, next.Missions[0].Current, "current never decreases")
	assert.Equal(t, domain.MissionInProgress, next.Missions[1].Status)
	assert.Equal(t, 400.0, next.Missions[1].Current)
	assert.Equal(t, domain.MissionLocked, next.Missions[2].Status)
	assert.Empty(t, out.CompletedMissions)

	next, out = mustReduce(t, e, next, MergeRemoteMissions{Remote: map[string]domain.RemoteMission{
		"m1": {Status: domain.MissionInProgress, Current: 999},
	}})
	assert.Equal(t, 150.0, next.Missions[0].Current)
	assert.Equal(t, domain.MissionCompleted, next.Missions[0].Status)
	assert.Equal(t, []string{"m1"}, out.CompletedMissions)
}

func TestMarket(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)
	s.XP = 1200
	jungle := domain.Skin{ID: "jungle", Name: "Jungle Explorer", Cost: 1000}

	next, out := mustReduce(t, e, s, BuySkin{Skin: jungle})
	assert.Equal(t, 1200, next.XP, "lifetime XP is untouched")
	assert.Equal(t, 1000, next.SpentXP)
	assert.Equal(t, 200, next.SpendableXP())
	assert.Equal(t, 2, next.Level)
	assert.Equal(t, []string{"classic", "jungle"}, next.OwnedSkins)
	assert.Equal(t, "jungle", next.ActiveSkinID)
	require.NotNil(t, out.Skin)
	assert.Equal(t, "jungle", out.Skin.ID)

	_, _, err := e.Reduce(next, BuySkin{Skin: jungle})
	assert.ErrorIs(t, err, domain.ErrSkinAlreadyOwned)

	_, _, err = e.Reduce(next, BuySkin{Skin: domain.Skin{ID: "gold", Cost: 500}})
	assert.ErrorIs(t, err, domain.ErrInsufficientXP)

	next, _ = mustReduce(t, e, next, EquipSkin{SkinID: "classic"})
	assert.Equal(t, "classic", next.ActiveSkinID)

	_, _, err = e.Reduce(next, EquipSkin{SkinID: "gold"})
	assert.ErrorIs(t, err, domain.ErrSkinNotOwned)
}

func TestMemoPlans(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)

	plan := domain.WorkPlan{ID: "p1", Date: "2025-03-11", StartTime: "08:00", EndTime: "12:00", Description: "Survey block B"}
	s, out := mustReduce(t, e, s, AddPlan{Plan: plan})
	require.NotNil(t, out.Plan)
	s, _ = mustReduce(t, e, s, AddPlan{Plan: domain.WorkPlan{ID: "p2", Date: "2025-03-12", StartTime: "07:30", EndTime: "09:00", Description: "Water nursery"}})
	require.Len(t, s.MemoPlans, 2)
	assert.Equal(t, "p2", s.MemoPlans[0].ID, "new plans are prepended")

	s, out = mustReduce(t, e, s, TogglePlan{PlanID: "p1"})
	assert.True(t, s.MemoPlans[1].IsDone)
	assert.True(t, out.Plan.IsDone)

	s, _ = mustReduce(t, e, s, DeletePlan{PlanID: "p2"})
	require.Len(t, s.MemoPlans, 1)
	assert.Equal(t, "p1", s.MemoPlans[0].ID)

	_, _, err := e.Reduce(s, TogglePlan{PlanID: "p2"})
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	_, _, err = e.Reduce(s, DeletePlan{PlanID: "p2"})
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	_, _, err = e.Reduce(s, AddPlan{Plan: plan})
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)
}

func TestValidatePlan(t *testing.T) {
	valid := domain.WorkPlan{ID: "p", Date: "2025-03-11", StartTime: "08:00", EndTime: "12:00", Description: "x"}
	require.NoError(t, ValidatePlan(valid))

	tests := map[string]func(p *domain.WorkPlan){
		"missing id":         func(p *domain.WorkPlan) { p.ID = "" },
		"blank description":  func(p *domain.WorkPlan) { p.Description = "  " },
		"bad date":           func(p *domain.WorkPlan) { p.Date = "11/03/2025" },
		"bad start":          func(p *domain.WorkPlan) { p.StartTime = "8am" },
		"bad end":            func(p *domain.WorkPlan) { p.EndTime = "25:00" },
		"end before start":   func(p *domain.WorkPlan) { p.EndTime = "07:00" },
		"end equal to start": func(p *domain.WorkPlan) { p.EndTime = "08:00" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := valid
			mutate(&p)
			assert.ErrorIs(t, ValidatePlan(p), domain.ErrInvalidPlan)
		})
	}
}

func TestTick(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := newTestState(t, e)
	s.LastFeedingTime = at(8, 0)

	next, _ := mustReduce(t, e, s, Tick{Now: at(17, 0)})
	assert.InDelta(t, 50.0, next.Stamina, 1e-9)
	assert.Equal(t, s.XP, next.XP)
}

func TestLogin(t *testing.T) {
	e := NewEngine(DefaultRules())
	s := e.NewGameState(testMissions(), domain.Position{}, at(9, 0))

	next, _ := mustReduce(t, e, s, Login{
		Profile: domain.Profile{
			UserID:       "u9",
			FullName:     "Budi Santoso",
			XP:           2500,
			Level:        99,
			PlantedArea:  400,
			OwnedSkins:   []string{"jungle", "classic", ""},
			ActiveSkinID: "jungle",
			MemoPlans:    []domain.WorkPlan{{ID: "p1"}},
		},
		Now: at(9, 0),
	})

	assert.Equal(t, "u9", next.UserID)
	assert.Equal(t, "Budi", next.Nickname)
	assert.Equal(t, 2500, next.XP)
	assert.Equal(t, 3, next.Level, "level is derived from xp")
	assert.Equal(t, 150.0, next.PlantedArea)
	assert.Equal(t, []string{"classic", "jungle"}, next.OwnedSkins)
	assert.Equal(t, "jungle", next.ActiveSkinID)
	assert.Len(t, next.MemoPlans, 1)
	assert.True(t, next.IsOnline)

	t.Run("unowned active skin falls back to classic", func(t *testing.T) {
		next, _ := mustReduce(t, e, s, Login{Profile: domain.Profile{UserID: "u1", ActiveSkinID: "gold"}, Now: at(9, 0)})
		assert.Equal(t, domain.DefaultSkinID, next.ActiveSkinID)
	})

	t.Run("stale remote progress does not roll back local progress", func(t *testing.T) {
		local := s.Clone()
		local.XP = 2550
		local.Level = 3
		local.PlantedArea = 120

		next, out := mustReduce(t, e, local, Login{
			Profile: domain.Profile{UserID: "u9", FullName: "Budi", XP: 1000, PlantedArea: 40},
			Now:     at(9, 0),
		})
		assert.Equal(t, 2550, next.XP)
		assert.Equal(t, 3, next.Level)
		assert.Equal(t, 120.0, next.PlantedArea)
		assert.False(t, out.LeveledUp())
	})

	t.Run("owned skins are charged against xp", func(t *testing.T) {
		market := []domain.Skin{
			{ID: domain.DefaultSkinID, Cost: 0},
			{ID: "jungle", Cost: 1500},
			{ID: "gold", Cost: 5000},
		}
		next, _ := mustReduce(t, e, s, Login{
			Profile: domain.Profile{UserID: "u9", XP: 2000, OwnedSkins: []string{"classic", "jungle"}},
			Market:  market,
			Now:     at(9, 0),
		})
		assert.Equal(t, 1500, next.SpentXP)
		assert.Equal(t, 500, next.SpendableXP())
		assert.Equal(t, []string{"classic", "jungle"}, next.OwnedSkins)

		local := s.Clone()
		local.SpentXP = 1800
		next, _ = mustReduce(t, e, local, Login{
			Profile: domain.Profile{UserID: "u9", XP: 2000, OwnedSkins: []string{"jungle"}},
			Market:  market,
			Now:     at(9, 0),
		})
		assert.Equal(t, 1800, next.SpentXP, "recorded spending is kept when higher")
	})
}

func BenchmarkReduceSubmitReport(b *testing.B) {
	e := NewEngine(DefaultRules())
	s := e.NewGameState(testMissions(), domain.Position{}, time.Now())
	s.Missions[0].Status = domain.MissionInProgress
	s.Missions[0].Target = 1e12
	a := SubmitReport{ReportID: "r", Draft: domain.ReportDraft{MissionID: "m1", Quantity: 1, Unit: "hari"}, Now: time.Now()}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := e.Reduce(s, a); err != nil {
			b.Fatal(err)
		}
	}
}
