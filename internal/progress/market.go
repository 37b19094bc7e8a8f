package progress

import (
	"fmt"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// BuySkin spends XP on a cosmetic and equips it. Lifetime XP is untouched;
// the cost is recorded in SpentXP.
type BuySkin struct {
	Skin domain.Skin
}

func (a BuySkin) apply(_ *Engine, s *domain.GameState, out *Outcome) error {
	if a.Skin.ID == "" {
		return fmt.Errorf("%w: empty skin id", domain.ErrSkinNotFound)
	}
	if s.OwnsSkin(a.Skin.ID) {
		return fmt.Errorf("%w: %s", domain.ErrSkinAlreadyOwned, a.Skin.ID)
	}
	if s.SpendableXP() < a.Skin.Cost {
		return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientXP, a.Skin.Cost, s.SpendableXP())
	}

	s.SpentXP += a.Skin.Cost
	s.OwnedSkins = append(s.OwnedSkins, a.Skin.ID)
	s.ActiveSkinID = a.Skin.ID

	skin := a.Skin
	out.Skin = &skin
	return nil
}

// EquipSkin switches the avatar to an owned skin.
type EquipSkin struct {
	SkinID string
}

func (a EquipSkin) apply(_ *Engine, s *domain.GameState, _ *Outcome) error {
	if !s.OwnsSkin(a.SkinID) {
		return fmt.Errorf("%w: %s", domain.ErrSkinNotOwned, a.SkinID)
	}
	s.ActiveSkinID = a.SkinID
	return nil
}
