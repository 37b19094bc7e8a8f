package progress

import (
	"slices"
	"strings"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// Tick recomputes stamina from the elapsed time since the last feeding.
type Tick struct {
	Now time.Time
}

func (a Tick) apply(_ *Engine, s *domain.GameState, _ *Outcome) error {
	s.Stamina = Stamina(s.LastFeedingTime, a.Now)
	return nil
}

// Login merges identity and remote progress into the session. XP and planted
// area never move backwards. Market prices the owned skins so spending
// survives a login on a device without a local snapshot.
type Login struct {
	Profile domain.Profile
	Market  []domain.Skin
	Now     time.Time
}

func (a Login) apply(_ *Engine, s *domain.GameState, _ *Outcome) error {
	p := a.Profile
	s.UserID = p.UserID
	s.FullName = p.FullName
	s.Nickname = nickname(p.FullName)

	s.XP = max(s.XP, p.XP)
	s.PlantedArea = min(s.TotalArea, max(s.PlantedArea, p.PlantedArea))

	s.OwnedSkins = []string{domain.DefaultSkinID}
	for _, id := range p.OwnedSkins {
		if id != "" && !s.OwnsSkin(id) {
			s.OwnedSkins = append(s.OwnedSkins, id)
		}
	}
	s.SpentXP = max(s.SpentXP, p.SpentXP, ownedCost(s.OwnedSkins, a.Market))
	s.ActiveSkinID = domain.DefaultSkinID
	if p.ActiveSkinID != "" && s.OwnsSkin(p.ActiveSkinID) {
		s.ActiveSkinID = p.ActiveSkinID
	}

	if p.MemoPlans != nil {
		s.MemoPlans = append([]domain.WorkPlan(nil), p.MemoPlans...)
	}

	s.Stamina = Stamina(s.LastFeedingTime, a.Now)
	s.IsOnline = true
	return nil
}

func nickname(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ownedCost is the market price of every owned skin.
func ownedCost(owned []string, market []domain.Skin) int {
	total := 0
	for _, skin := range market {
		if slices.Contains(owned, skin.ID) {
			total += skin.Cost
		}
	}
	return total
}
