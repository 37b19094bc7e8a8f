package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
	"github.com/osse101/Pokemonkey_Go/internal/notify"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists the fields that failed validation.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON encodes payload into a pooled buffer before writing, so an
// encoding failure never leaves a half-written body.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the mapped status and message.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Warn(op+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// mapServiceError maps domain errors to an HTTP status and a message the
// forester can act on.
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissionNotFound):
		return http.StatusNotFound, ErrMsgMissionNotFoundError
	case errors.Is(err, domain.ErrSkinNotFound):
		return http.StatusNotFound, ErrMsgSkinNotFoundError
	case errors.Is(err, domain.ErrPlanNotFound):
		return http.StatusNotFound, ErrMsgPlanNotFoundError

	case errors.Is(err, domain.ErrMissionLocked):
		return http.StatusConflict, ErrMsgMissionLockedError
	case errors.Is(err, domain.ErrMissionNotActive):
		return http.StatusConflict, ErrMsgMissionNotActiveError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgTransitionError
	case errors.Is(err, domain.ErrSkinAlreadyOwned):
		return http.StatusConflict, ErrMsgSkinOwnedError
	case errors.Is(err, domain.ErrSkinNotOwned):
		return http.StatusConflict, ErrMsgSkinNotOwnedError

	case errors.Is(err, domain.ErrInsufficientXP):
		return http.StatusBadRequest, notify.MsgInsufficientXP
	case errors.Is(err, domain.ErrInvalidUnit):
		return http.StatusBadRequest, ErrMsgInvalidUnitError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	case errors.Is(err, domain.ErrInvalidPlan):
		return http.StatusBadRequest, ErrMsgInvalidPlanError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError

	case errors.Is(err, domain.ErrAuthFailed):
		return http.StatusUnauthorized, ErrMsgAuthFailedError
	case errors.Is(err, domain.ErrNotLoggedIn):
		return http.StatusUnauthorized, ErrMsgNotLoggedInError

	case errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway, ErrMsgBadGatewayError
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
