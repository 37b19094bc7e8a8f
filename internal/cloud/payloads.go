package cloud

import "github.com/osse101/Pokemonkey_Go/internal/domain"

// POST actions understood by the endpoint.
const (
	ActionRegister            = "register"
	ActionUpdateProgress      = "updateProgress"
	ActionUpdateMissionStatus = "updateMissionStatus"
	ActionAddReport           = "addReport"
)

// Payload is a POST body. Every payload carries its action name.
type Payload interface {
	ActionName() string
}

// RegisterPayload creates an account on the endpoint.
type RegisterPayload struct {
	Action   string `json:"action"`
	UserID   string `json:"userId"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (p RegisterPayload) ActionName() string { return p.Action }

// NewRegisterPayload builds a register request.
func NewRegisterPayload(userID, password, fullName string) RegisterPayload {
	return RegisterPayload{Action: ActionRegister, UserID: userID, Password: password, FullName: fullName}
}

// ProgressPayload is the heartbeat carrying a forester's progress. Version is
// the snapshot sequence number so the receiver can drop stale writes.
type ProgressPayload struct {
	Action       string            `json:"action"`
	Version      uint64            `json:"version"`
	UserID       string            `json:"userId"`
	XP           int               `json:"xp"`
	SpentXP      int               `json:"spentXp"`
	Level        int               `json:"level"`
	PlantedArea  float64           `json:"plantedArea"`
	OwnedSkins   []string          `json:"ownedSkins"`
	ActiveSkinID string            `json:"activeSkinId"`
	MemoPlans    []domain.WorkPlan `json:"memoPlans"`
	Stamina      float64           `json:"stamina"`
	PosX         float64           `json:"posX"`
	PosY         float64           `json:"posY"`
}

func (p ProgressPayload) ActionName() string { return p.Action }

// NewProgressPayload snapshots the synced fields of s. XP is lifetime XP;
// SpentXP is what the market has taken from it.
func NewProgressPayload(s domain.GameState) ProgressPayload {
	return ProgressPayload{
		Action:       ActionUpdateProgress,
		Version:      s.Version,
		UserID:       s.UserID,
		XP:           s.XP,
		SpentXP:      s.SpentXP,
		Level:        s.Level,
		PlantedArea:  s.PlantedArea,
		OwnedSkins:   s.OwnedSkins,
		ActiveSkinID: s.ActiveSkinID,
		MemoPlans:    s.MemoPlans,
		Stamina:      s.Stamina,
		PosX:         s.AvatarPos.X,
		PosY:         s.AvatarPos.Y,
	}
}

// MissionStatusPayload reports a mission status change.
type MissionStatusPayload struct {
	Action    string               `json:"action"`
	MissionID string               `json:"missionId"`
	Status    domain.MissionStatus `json:"status"`
}

func (p MissionStatusPayload) ActionName() string { return p.Action }

// NewMissionStatusPayload builds an updateMissionStatus request.
func NewMissionStatusPayload(missionID string, status domain.MissionStatus) MissionStatusPayload {
	return MissionStatusPayload{Action: ActionUpdateMissionStatus, MissionID: missionID, Status: status}
}

// ReportPayload publishes a field report together with the progress it produced.
type ReportPayload struct {
	ProgressPayload
	FullName       string               `json:"fullName"`
	ReportID       string               `json:"reportId"`
	ActivityType   string               `json:"activityType"`
	AchievedUnit   float64              `json:"achievedUnit"`
	Notes          string               `json:"notes"`
	XPGained       int                  `json:"xpGained"`
	PhotoData      string               `json:"photoData,omitempty"`
	MissionID      string               `json:"missionId"`
	MissionCurrent float64              `json:"missionCurrent"`
	MissionStatus  domain.MissionStatus `json:"missionStatus"`
}

// NewReportPayload builds an addReport request from the state after the
// report was applied.
func NewReportPayload(s domain.GameState, r domain.FieldReport) ReportPayload {
	p := ReportPayload{
		ProgressPayload: NewProgressPayload(s),
		FullName:        s.FullName,
		ReportID:        r.ID,
		ActivityType:    r.ActivityType,
		AchievedUnit:    r.Achieved,
		Notes:           r.Notes,
		XPGained:        r.XPGained,
		PhotoData:       r.PhotoData,
		MissionID:       r.MissionID,
	}
	p.Action = ActionAddReport
	if idx := s.MissionIndex(r.MissionID); idx >= 0 {
		p.MissionCurrent = s.Missions[idx].Current
		p.MissionStatus = s.Missions[idx].Status
	}
	return p
}
