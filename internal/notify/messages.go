package notify

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Banner texts shown to the forester after an action.
const (
	MsgInsufficientXP = "XP TIDAK CUKUP!"
	MsgSkinEquipped   = "SKIN DIPASANG!"
	MsgReportSaved    = "LAPORAN TERSIMPAN!"
	MsgMissionStarted = "MISI DIMULAI!"
)

// Shout upper-cases s with Indonesian casing rules.
func Shout(s string) string {
	// A Caser keeps state, so one is built per call.
	return cases.Upper(language.Indonesian).String(s)
}

// WelcomeBack is the banner shown after login.
func WelcomeBack(fullName string) string {
	return fmt.Sprintf("WELCOME BACK, %s!", Shout(fullName))
}

// SkinBought is the banner shown after a market purchase.
func SkinBought(skinName string) string {
	return fmt.Sprintf("%s DIBELI!", Shout(skinName))
}

// MissionComplete is the banner shown when a report finishes a mission.
func MissionComplete(title string) string {
	return fmt.Sprintf("MISI SELESAI: %s!", Shout(title))
}

// LevelUp is the banner shown when a report crosses a level boundary.
func LevelUp(level int) string {
	return fmt.Sprintf("LEVEL UP! SEKARANG LEVEL %d", level)
}
