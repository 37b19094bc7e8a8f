package handler

import (
	"net/http"

	"github.com/osse101/Pokemonkey_Go/internal/auth"
	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/session"
)

// AddPlanRequest is a new work memo entry.
type AddPlanRequest struct {
	ID          string `json:"id" validate:"max=64"`
	Date        string `json:"date" validate:"required,isodate"`
	StartTime   string `json:"startTime" validate:"required,hhmm"`
	EndTime     string `json:"endTime" validate:"required,hhmm"`
	Description string `json:"description" validate:"required,max=500"`
}

// MemoHandler serves the work plan memo.
type MemoHandler struct {
	svc session.MemoService
}

// NewMemoHandler creates a MemoHandler.
func NewMemoHandler(svc session.MemoService) *MemoHandler {
	return &MemoHandler{svc: svc}
}

// HandleListPlans returns the memo, newest first.
// @Summary Work plans
// @Tags memo
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.WorkPlan
// @Router /api/v1/me/plans [get]
func (h *MemoHandler) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.Plans(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, "List plans", err)
		return
	}
	if plans == nil {
		plans = []domain.WorkPlan{}
	}
	respondJSON(w, http.StatusOK, plans)
}

// HandleAddPlan adds a memo entry.
// @Summary Add a work plan
// @Tags memo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddPlanRequest true "Plan"
// @Success 201 {object} ActionResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/me/plans [post]
func (h *MemoHandler) HandleAddPlan(w http.ResponseWriter, r *http.Request) {
	var req AddPlanRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add plan"); err != nil {
		return
	}

	res, err := h.svc.AddPlan(r.Context(), auth.UserIDFromContext(r.Context()), domain.WorkPlan{
		ID:          req.ID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(w, r, "Add plan", err)
		return
	}
	resp := newActionResponse(res)
	resp.Message = MsgPlanAdded
	respondJSON(w, http.StatusCreated, resp)
}

// HandleTogglePlan flips a plan's done flag.
// @Summary Toggle a work plan
// @Tags memo
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan id"
// @Success 200 {object} ActionResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/me/plans/{id}/toggle [post]
func (h *MemoHandler) HandleTogglePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	res, err := h.svc.TogglePlan(r.Context(), auth.UserIDFromContext(r.Context()), planID)
	if err != nil {
		respondServiceError(w, r, "Toggle plan", err)
		return
	}
	respondJSON(w, http.StatusOK, newActionResponse(res))
}

// HandleDeletePlan removes a plan.
// @Summary Delete a work plan
// @Tags memo
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan id"
// @Success 200 {object} ActionResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/me/plans/{id} [delete]
func (h *MemoHandler) HandleDeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	res, err := h.svc.DeletePlan(r.Context(), auth.UserIDFromContext(r.Context()), planID)
	if err != nil {
		respondServiceError(w, r, "Delete plan", err)
		return
	}
	respondJSON(w, http.StatusOK, newActionResponse(res))
}
