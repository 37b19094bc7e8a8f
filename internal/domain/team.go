package domain

// TeamMember is one row of the shared team sheet.
type TeamMember struct {
	Name       string  `json:"name"`
	XP         int     `json:"xp"`
	Level      int     `json:"level"`
	LastActive string  `json:"lastActive"`
	TotalHa    float64 `json:"totalHa"`
}

// ActiveUser is another forester currently online in the shared habitat.
type ActiveUser struct {
	UserID  string  `json:"userId"`
	Name    string  `json:"name"`
	SkinID  string  `json:"skinId"`
	PosX    float64 `json:"posX"`
	PosY    float64 `json:"posY"`
	Stamina float64 `json:"stamina"`
	Level   int     `json:"level"`
}

// Profile is the identity and remote progress returned by a successful login.
type Profile struct {
	UserID       string     `json:"userId"`
	FullName     string     `json:"fullName"`
	XP           int        `json:"xp"`
	SpentXP      int        `json:"spentXp"`
	Level        int        `json:"level"`
	PlantedArea  float64    `json:"plantedArea"`
	OwnedSkins   []string   `json:"ownedSkins"`
	ActiveSkinID string     `json:"activeSkinId"`
	MemoPlans    []WorkPlan `json:"memoPlans"`
}
