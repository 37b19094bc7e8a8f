package session

import (
	"context"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/cloud"
	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/team"
	"github.com/osse101/Pokemonkey_Go/internal/worker"
)

// CloudClient is the remote endpoint as the session service uses it.
type CloudClient interface {
	Enabled() bool
	Login(ctx context.Context, userID, password string) (domain.Profile, error)
	GlobalMissions(ctx context.Context) (map[string]domain.RemoteMission, error)
	ActiveUsers(ctx context.Context) ([]domain.ActiveUser, error)
	TeamData(ctx context.Context) ([]domain.TeamMember, error)
	Post(ctx context.Context, payload cloud.Payload) error
}

// JobSubmitter runs fire-and-forget work off the request path.
type JobSubmitter interface {
	TrySubmit(job worker.Job) error
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	State   domain.GameState
	Message string
}

// ActionResult is the new state after a mutation plus what changed.
type ActionResult struct {
	State             domain.GameState
	Message           string
	XPGained          int
	Report            *domain.FieldReport
	CompletedMissions []string
	UnlockedMissions  []string
	LeveledUp         bool
	Skin              *domain.Skin
	Plan              *domain.WorkPlan
}

// ActiveUsersResult lists foresters online in the shared habitat.
type ActiveUsersResult struct {
	Users  []domain.ActiveUser `json:"users"`
	Online bool                `json:"online"`
}

// AuthService handles identity against the shared endpoint.
type AuthService interface {
	Register(ctx context.Context, userID, password, fullName string) error
	Login(ctx context.Context, userID, password string) (LoginResult, error)
	Logout(ctx context.Context, userID string) error
}

// ProgressService reads and mutates a forester's progress.
type ProgressService interface {
	State(ctx context.Context, userID string) (domain.GameState, error)
	Missions(ctx context.Context, userID string) ([]domain.Mission, error)
	StartMission(ctx context.Context, userID, missionID string) (ActionResult, error)
	SubmitReport(ctx context.Context, userID string, draft domain.ReportDraft) (ActionResult, error)
	Reports(ctx context.Context, userID string, limit int) ([]domain.FieldReport, error)
}

// MarketService handles the skin shop.
type MarketService interface {
	Skins() []domain.Skin
	BuySkin(ctx context.Context, userID, skinQuery string) (ActionResult, error)
	EquipSkin(ctx context.Context, userID, skinID string) (ActionResult, error)
}

// MemoService handles the work plan memo.
type MemoService interface {
	Plans(ctx context.Context, userID string) ([]domain.WorkPlan, error)
	AddPlan(ctx context.Context, userID string, plan domain.WorkPlan) (ActionResult, error)
	TogglePlan(ctx context.Context, userID, planID string) (ActionResult, error)
	DeletePlan(ctx context.Context, userID, planID string) (ActionResult, error)
}

// TeamService reads shared team data.
type TeamService interface {
	Team(ctx context.Context, userID string) (team.Summary, error)
	ActiveUsers(ctx context.Context, userID string) (ActiveUsersResult, error)
}

// Service is the full session interface.
type Service interface {
	AuthService
	ProgressService
	MarketService
	MemoService
	TeamService

	// Background work driven by the scheduler.
	TickAll(ctx context.Context) error
	PollGlobalMissions(ctx context.Context) error

	ActiveSessionCount() int
	Shutdown(ctx context.Context) error
}

// Config tunes the service.
type Config struct {
	Location    *time.Location
	SyncTimeout time.Duration
	CacheSize   int
	CacheTTL    time.Duration
	// SpawnPosition places new avatars; nil picks a random spot.
	SpawnPosition func() domain.Position
}
