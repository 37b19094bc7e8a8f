package handler

import (
	"net/http"

	"github.com/osse101/Pokemonkey_Go/internal/auth"
	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/session"
)

// SubmitReportRequest is a field report as entered by the forester.
type SubmitReportRequest struct {
	MissionID       string  `json:"missionId" validate:"required,max=64"`
	ActivityType    string  `json:"activityType" validate:"max=100"`
	DurationMinutes int     `json:"durationMinutes" validate:"gte=0,lte=1440"`
	Quantity        float64 `json:"quantity" validate:"gt=0"`
	Unit            string  `json:"unit" validate:"required,unitkind"`
	Notes           string  `json:"notes" validate:"max=2000"`
	PhotoData       string  `json:"photoData,omitempty"`
}

// ActionResponse is the state after a mutation plus what changed.
type ActionResponse struct {
	Message           string              `json:"message,omitempty"`
	XPGained          int                 `json:"xpGained,omitempty"`
	LeveledUp         bool                `json:"leveledUp,omitempty"`
	Report            *domain.FieldReport `json:"report,omitempty"`
	CompletedMissions []string            `json:"completedMissions,omitempty"`
	UnlockedMissions  []string            `json:"unlockedMissions,omitempty"`
	Skin              *domain.Skin        `json:"skin,omitempty"`
	Plan              *domain.WorkPlan    `json:"plan,omitempty"`
	State             domain.GameState    `json:"state"`
}

func newActionResponse(res session.ActionResult) ActionResponse {
	return ActionResponse{
		Message:           res.Message,
		XPGained:          res.XPGained,
		LeveledUp:         res.LeveledUp,
		Report:            res.Report,
		CompletedMissions: res.CompletedMissions,
		UnlockedMissions:  res.UnlockedMissions,
		Skin:              res.Skin,
		Plan:              res.Plan,
		State:             res.State,
	}
}

// ProgressHandler serves state, missions and field reports.
type ProgressHandler struct {
	svc session.ProgressService
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc session.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

// HandleGetState returns the caller's current state.
// @Summary Current game state
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.GameState
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/me/state [get]
func (h *ProgressHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.State(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, "Get state", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HandleGetMissions returns the caller's mission board.
// @Summary Mission board
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Mission
// @Router /api/v1/me/missions [get]
func (h *ProgressHandler) HandleGetMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := h.svc.Missions(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, "Get missions", err)
		return
	}
	respondJSON(w, http.StatusOK, missions)
}

// HandleStartMission moves an available mission into progress.
// @Summary Start a mission
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mission id"
// @Success 200 {object} ActionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/me/missions/{id}/start [post]
func (h *ProgressHandler) HandleStartMission(w http.ResponseWriter, r *http.Request) {
	missionID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	res, err := h.svc.StartMission(r.Context(), auth.UserIDFromContext(r.Context()), missionID)
	if err != nil {
		respondServiceError(w, r, "Start mission", err)
		return
	}
	respondJSON(w, http.StatusOK, newActionResponse(res))
}

// HandleSubmitReport applies a field report.
// @Summary Submit a field report
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitReportRequest true "Report"
// @Success 201 {object} ActionResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/me/reports [post]
func (h *ProgressHandler) HandleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var req SubmitReportRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit report"); err != nil {
		return
	}

	res, err := h.svc.SubmitReport(r.Context(), auth.UserIDFromContext(r.Context()), domain.ReportDraft{
		MissionID:       req.MissionID,
		ActivityType:    req.ActivityType,
		DurationMinutes: req.DurationMinutes,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		Notes:           req.Notes,
		PhotoData:       req.PhotoData,
	})
	if err != nil {
		respondServiceError(w, r, "Submit report", err)
		return
	}
	respondJSON(w, http.StatusCreated, newActionResponse(res))
}

// HandleListReports returns the newest reports first.
// @Summary Report log
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of reports"
// @Success 200 {array} domain.FieldReport
// @Router /api/v1/me/reports [get]
func (h *ProgressHandler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetOptionalIntQueryParam(r, w, "limit", session.DefaultReportLimit)
	if !ok {
		return
	}

	reports, err := h.svc.Reports(r.Context(), auth.UserIDFromContext(r.Context()), limit)
	if err != nil {
		respondServiceError(w, r, "List reports", err)
		return
	}
	if reports == nil {
		reports = []domain.FieldReport{}
	}
	respondJSON(w, http.StatusOK, reports)
}
