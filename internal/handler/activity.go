package handler

import (
	"context"
	"net/http"

	"github.com/osse101/Pokemonkey_Go/internal/auth"
	"github.com/osse101/Pokemonkey_Go/internal/eventlog"
)

// ActivityReader reads a forester's audit trail.
type ActivityReader interface {
	Activity(ctx context.Context, userID string, limit int) ([]eventlog.Event, error)
}

// HandleGetActivity returns the caller's recent logged events, newest first.
// @Summary Activity log
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of entries"
// @Success 200 {array} eventlog.Event
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/me/activity [get]
func HandleGetActivity(reader ActivityReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetOptionalIntQueryParam(r, w, "limit", eventlog.DefaultQueryLimit)
		if !ok {
			return
		}

		events, err := reader.Activity(r.Context(), auth.UserIDFromContext(r.Context()), limit)
		if err != nil {
			respondServiceError(w, r, "Get activity", err)
			return
		}
		if events == nil {
			events = []eventlog.Event{}
		}
		respondJSON(w, http.StatusOK, events)
	}
}
