package cloud

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// number accepts both JSON numbers and numeric strings; spreadsheet-backed
// endpoints return either depending on cell formatting.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return err
		}
		*n = number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = number(f)
	return nil
}

type profileWire struct {
	UserID       string          `json:"userId"`
	FullName     string          `json:"fullName"`
	XP           number          `json:"xp"`
	SpentXP      number          `json:"spentXp"`
	Level        number          `json:"level"`
	PlantedArea  number          `json:"plantedArea"`
	OwnedSkins   json.RawMessage `json:"ownedSkins"`
	ActiveSkinID string          `json:"activeSkinId"`
	MemoPlans    json.RawMessage `json:"memoPlans"`
}

func (p profileWire) toDomain() domain.Profile {
	profile := domain.Profile{
		UserID:       p.UserID,
		FullName:     p.FullName,
		XP:           int(p.XP),
		SpentXP:      int(p.SpentXP),
		Level:        int(p.Level),
		PlantedArea:  float64(p.PlantedArea),
		ActiveSkinID: p.ActiveSkinID,
	}
	if profile.Level < 1 {
		profile.Level = 1
	}
	if profile.ActiveSkinID == "" {
		profile.ActiveSkinID = domain.DefaultSkinID
	}

	// Non-array values fall back to defaults instead of failing the login.
	if err := json.Unmarshal(p.OwnedSkins, &profile.OwnedSkins); err != nil || profile.OwnedSkins == nil {
		profile.OwnedSkins = []string{domain.DefaultSkinID}
	}
	if err := json.Unmarshal(p.MemoPlans, &profile.MemoPlans); err != nil || profile.MemoPlans == nil {
		profile.MemoPlans = []domain.WorkPlan{}
	}
	return profile
}

type remoteMissionWire struct {
	Status  string `json:"status"`
	Current number `json:"current"`
}

type activeUserWire struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	SkinID  string `json:"skinId"`
	PosX    number `json:"posX"`
	PosY    number `json:"posY"`
	Stamina number `json:"stamina"`
	Level   number `json:"level"`
}

func (u activeUserWire) toDomain() domain.ActiveUser {
	return domain.ActiveUser{
		UserID:  u.UserID,
		Name:    u.Name,
		SkinID:  u.SkinID,
		PosX:    float64(u.PosX),
		PosY:    float64(u.PosY),
		Stamina: float64(u.Stamina),
		Level:   int(u.Level),
	}
}

type teamMemberWire struct {
	Name       string `json:"name"`
	XP         number `json:"xp"`
	Level      number `json:"level"`
	LastActive string `json:"lastActive"`
	TotalHa    number `json:"totalHa"`
}

func (m teamMemberWire) toDomain() domain.TeamMember {
	return domain.TeamMember{
		Name:       m.Name,
		XP:         int(m.XP),
		Level:      int(m.Level),
		LastActive: m.LastActive,
		TotalHa:    float64(m.TotalHa),
	}
}
