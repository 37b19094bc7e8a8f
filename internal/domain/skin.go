package domain

// SkinColors is the avatar palette for a skin.
type SkinColors struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Accent    string `json:"accent" yaml:"accent"`
}

// Skin is a cosmetic bought with XP.
type Skin struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Cost        int        `json:"cost" yaml:"cost"`
	Colors      SkinColors `json:"colors" yaml:"colors"`
}

// DefaultSkinID is owned and equipped by every new forester.
const DefaultSkinID = "classic"
