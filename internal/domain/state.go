package domain

import (
	"slices"
	"time"
)

// Game-wide limits.
const (
	MaxLives         = 5
	MaxStamina       = 100.0
	InitialTotalArea = 150.0
	XPPerLevel       = 1000
)

// Position is the avatar's place in the habitat, in percent of the view.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Facing string  `json:"facing"`
}

// GameState is the aggregate root for one forester's session. It is replaced
// as a whole on every change and never mutated in place.
type GameState struct {
	Version uint64 `json:"version"`

	UserID       string `json:"userId"`
	Nickname     string `json:"nickname"`
	FullName     string `json:"fullName"`
	Jabatan      string `json:"jabatan"`
	StatusText   string `json:"statusText"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`

	TotalArea   float64 `json:"totalArea"`
	ClearedArea float64 `json:"clearedArea"`
	PlantedArea float64 `json:"plantedArea"`

	XP      int `json:"xp"`
	SpentXP int `json:"spentXP"`
	Level   int `json:"level"`

	Stamina         float64   `json:"stamina"`
	LastFeedingTime time.Time `json:"lastFeedingTime"`
	// Lives may be fractional in snapshots written by older clients.
	Lives float64 `json:"lives"`

	Missions  []Mission     `json:"missions"`
	Reports   []FieldReport `json:"reports"`
	MemoPlans []WorkPlan    `json:"memoPlans"`

	OwnedSkins   []string `json:"ownedSkins"`
	ActiveSkinID string   `json:"activeSkinId"`
	AvatarPos    Position `json:"monkeyPos"`

	IsOnline bool `json:"isOnline"`
}

// LevelForXP is the level derived from lifetime XP.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// SpendableXP is the XP still available in the market.
func (s GameState) SpendableXP() int {
	if s.XP <= s.SpentXP {
		return 0
	}
	return s.XP - s.SpentXP
}

// MissionIndex returns the position of the mission with the given id, or -1.
func (s GameState) MissionIndex(id string) int {
	for i := range s.Missions {
		if s.Missions[i].ID == id {
			return i
		}
	}
	return -1
}

// OwnsSkin reports whether the skin is in the forester's wardrobe.
func (s GameState) OwnsSkin(id string) bool {
	for _, owned := range s.OwnedSkins {
		if owned == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so reducers can build the next snapshot without
// aliasing slices of the previous one.
func (s GameState) Clone() GameState {
	next := s
	next.Missions = slices.Clone(s.Missions)
	for i := range next.Missions {
		next.Missions[i].UnlockedBy = slices.Clone(next.Missions[i].UnlockedBy)
	}
	next.Reports = slices.Clone(s.Reports)
	next.MemoPlans = slices.Clone(s.MemoPlans)
	next.OwnedSkins = slices.Clone(s.OwnedSkins)
	return next
}
