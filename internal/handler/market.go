package handler

import (
	"net/http"

	"github.com/osse101/Pokemonkey_Go/internal/auth"
	"github.com/osse101/Pokemonkey_Go/internal/session"
)

// BuySkinRequest names the skin by id or (approximate) name.
type BuySkinRequest struct {
	Skin string `json:"skin" validate:"required,max=64"`
}

// EquipSkinRequest names an owned skin.
type EquipSkinRequest struct {
	SkinID string `json:"skinId" validate:"required,max=64"`
}

// MarketHandler serves the skin shop.
type MarketHandler struct {
	svc session.MarketService
}

// NewMarketHandler creates a MarketHandler.
func NewMarketHandler(svc session.MarketService) *MarketHandler {
	return &MarketHandler{svc: svc}
}

// HandleListSkins lists the catalog.
// @Summary Skin catalog
// @Tags market
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Skin
// @Router /api/v1/me/skins [get]
func (h *MarketHandler) HandleListSkins(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Skins())
}

// HandleBuySkin spends XP on a skin.
// @Summary Buy a skin
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BuySkinRequest true "Skin id or name"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/me/skins/buy [post]
func (h *MarketHandler) HandleBuySkin(w http.ResponseWriter, r *http.Request) {
	var req BuySkinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy skin"); err != nil {
		return
	}

	res, err := h.svc.BuySkin(r.Context(), auth.UserIDFromContext(r.Context()), req.Skin)
	if err != nil {
		respondServiceError(w, r, "Buy skin", err)
		return
	}
	respondJSON(w, http.StatusOK, newActionResponse(res))
}

// HandleEquipSkin switches to an owned skin.
// @Summary Equip a skin
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EquipSkinRequest true "Skin id"
// @Success 200 {object} ActionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/me/skins/equip [post]
func (h *MarketHandler) HandleEquipSkin(w http.ResponseWriter, r *http.Request) {
	var req EquipSkinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Equip skin"); err != nil {
		return
	}

	res, err := h.svc.EquipSkin(r.Context(), auth.UserIDFromContext(r.Context()), req.SkinID)
	if err != nil {
		respondServiceError(w, r, "Equip skin", err)
		return
	}
	respondJSON(w, http.StatusOK, newActionResponse(res))
}
