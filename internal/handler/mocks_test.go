package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/session"
	"github.com/osse101/Pokemonkey_Go/internal/team"
)

// MockSessionService is a testify mock of session.Service.
type MockSessionService struct {
	mock.Mock
}

var _ session.Service = (*MockSessionService)(nil)

func (m *MockSessionService) Register(ctx context.Context, userID, password, fullName string) error {
	return m.Called(ctx, userID, password, fullName).Error(0)
}

func (m *MockSessionService) Login(ctx context.Context, userID, password string) (session.LoginResult, error) {
	args := m.Called(ctx, userID, password)
	return args.Get(0).(session.LoginResult), args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockSessionService) State(ctx context.Context, userID string) (domain.GameState, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.GameState), args.Error(1)
}

func (m *MockSessionService) Missions(ctx context.Context, userID string) ([]domain.Mission, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mission), args.Error(1)
}

func (m *MockSessionService) StartMission(ctx context.Context, userID, missionID string) (session.ActionResult, error) {
	args := m.Called(ctx, userID, missionID)
	return args.Get(0).(session.ActionResult), args.Error(1)
}

func (m *MockSessionService) SubmitReport(ctx context.Context, userID string, draft domain.ReportDraft) (session.ActionResult, error) {
	args := m.Called(ctx, userID, draft)
	return args.Get(0).(session.ActionResult), args.Error(1)
}

func (m *MockSessionService) Reports(ctx context.Context, userID string, limit int) ([]domain.FieldReport, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldReport), args.Error(1)
}

func (m *MockSessionService) Skins() []domain.Skin {
	return m.Called().Get(0).([]domain.Skin)
}

func (m *MockSessionService) BuySkin(ctx context.Context, userID, skinQuery string) (session.ActionResult, error) {
	args := m.Called(ctx, userID, skinQuery)
	return args.Get(0).(session.ActionResult), args.Error(1)
}

func (m *MockSessionService) EquipSkin(ctx context.Context, userID, skinID string) (session.ActionResult, error) {
	args := m.Called(ctx, userID, skinID)
	return args.Get(0).(session.ActionResult), args.Error(1)
}

func (m *MockSessionService) Plans(ctx context.Context, userID string) ([]domain.WorkPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkPlan), args.Error(1)
}

func (m *MockSessionService) AddPlan(ctx context.Context, userID string, plan domain.WorkPlan) (session.ActionResult, error) {
	args := m.Called(ctx, userID, plan)
	return args.Get(0).(session.ActionResult), args.Error(1)
}

func (m *MockSessionService) TogglePlan(ctx context.Context, userID, planID string) (session.ActionResult, error) {
	args := m.Called(ctx, userID, planID)
	return args.Get(0).(session.ActionResult), args.Error(1)
}

func (m *MockSessionService) DeletePlan(ctx context.Context, userID, planID string) (session.ActionResult, error) {
	args := m.Called(ctx, userID, planID)
	return args.Get(0).(session.ActionResult), args.Error(1)
}

func (m *MockSessionService) Team(ctx context.Context, userID string) (team.Summary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(team.Summary), args.Error(1)
}

func (m *MockSessionService) ActiveUsers(ctx context.Context, userID string) (session.ActiveUsersResult, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(session.ActiveUsersResult), args.Error(1)
}

func (m *MockSessionService) TickAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessionService) PollGlobalMissions(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessionService) ActiveSessionCount() int {
	return m.Called().Int(0)
}

func (m *MockSessionService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockTokenIssuer is a testify mock of TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID, fullName string) (string, time.Time, error) {
	args := m.Called(userID, fullName)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
