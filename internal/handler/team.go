package handler

import (
	"net/http"

	"github.com/osse101/Pokemonkey_Go/internal/auth"
	"github.com/osse101/Pokemonkey_Go/internal/session"
)

// TeamHandler serves the shared team views.
type TeamHandler struct {
	svc session.TeamService
}

// NewTeamHandler creates a TeamHandler.
func NewTeamHandler(svc session.TeamService) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// HandleGetTeam returns the team sheet with the mascot's advice.
// @Summary Team summary
// @Tags team
// @Produce json
// @Security BearerAuth
// @Success 200 {object} team.Summary
// @Router /api/v1/me/team [get]
func (h *TeamHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Team(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, "Get team", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// HandleGetActiveUsers lists the other foresters in the shared habitat.
// @Summary Active foresters
// @Tags team
// @Produce json
// @Security BearerAuth
// @Success 200 {object} session.ActiveUsersResult
// @Router /api/v1/me/active-users [get]
func (h *TeamHandler) HandleGetActiveUsers(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ActiveUsers(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, "Get active users", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
