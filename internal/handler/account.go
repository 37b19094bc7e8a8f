package handler

import (
	"net/http"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/auth"
	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
	"github.com/osse101/Pokemonkey_Go/internal/session"
)

// TokenIssuer signs session tokens after a successful login.
type TokenIssuer interface {
	Issue(userID, fullName string) (string, time.Time, error)
}

// RegisterRequest creates an account on the shared endpoint.
type RegisterRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=4,max=128"`
	FullName string `json:"fullName" validate:"required,max=100"`
}

// LoginRequest carries the forester's credentials.
type LoginRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResponse carries the session token and the seeded state.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Message   string           `json:"message"`
	State     domain.GameState `json:"state"`
}

// AccountHandler serves registration, login and logout.
type AccountHandler struct {
	svc    session.AuthService
	tokens TokenIssuer
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(svc session.AuthService, tokens TokenIssuer) *AccountHandler {
	return &AccountHandler{svc: svc, tokens: tokens}
}

// HandleRegister creates an account.
// @Summary Register a forester
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
		return
	}

	if err := h.svc.Register(r.Context(), req.UserID, req.Password, req.FullName); err != nil {
		respondServiceError(w, r, "Register", err)
		return
	}
	respondJSON(w, http.StatusCreated, SuccessResponse{Message: MsgRegistered})
}

// HandleLogin verifies credentials and returns a session token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
		return
	}

	res, err := h.svc.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		respondServiceError(w, r, "Login", err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(res.State.UserID, res.State.FullName)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgIssueTokenFailed, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}

	logger.FromContext(r.Context()).Info("Forester logged in", "user_id", res.State.UserID, "level", res.State.Level)
	respondJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Message:   res.Message,
		State:     res.State,
	})
}

// HandleLogout closes the caller's session.
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/logout [post]
func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context(), auth.UserIDFromContext(r.Context())); err != nil {
		respondServiceError(w, r, "Logout", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLoggedOut})
}
