// Package team rolls up the shared team sheet and produces the mascot's advice line.
package team

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// Advice thresholds
const (
	// TargetHectares is the team's reclamation target.
	TargetHectares = 150.0

	nearlyDonePercent  = 75.0
	solidPercent       = 40.0
	starPerformerXP    = 5000
	selfLastActiveText = "Sekarang"
)

// Summary is the team view returned to the client.
type Summary struct {
	Members    []domain.TeamMember `json:"members"`
	TotalHa    float64             `json:"totalHa"`
	TargetHa   float64             `json:"targetHa"`
	Percentage float64             `json:"percentage"`
	Advice     string              `json:"advice"`
	Online     bool                `json:"online"`
}

// Summarize sorts members by XP (highest first) and computes totals and advice.
func Summarize(members []domain.TeamMember, online bool) Summary {
	sorted := slices.Clone(members)
	slices.SortStableFunc(sorted, func(a, b domain.TeamMember) int {
		return cmp.Compare(b.XP, a.XP)
	})
	if sorted == nil {
		sorted = []domain.TeamMember{}
	}

	total := totalHa(sorted)
	return Summary{
		Members:    sorted,
		TotalHa:    total,
		TargetHa:   TargetHectares,
		Percentage: total / TargetHectares * 100,
		Advice:     Advice(sorted),
		Online:     online,
	}
}

// Advice picks the first matching message for the team's progress.
func Advice(members []domain.TeamMember) string {
	total := totalHa(members)
	percentage := total / TargetHectares * 100

	switch {
	case total == 0:
		return "UU-AA! Lahan masih gersang! Ayo ajak timmu mulai menanam sekarang!"
	case percentage >= 100:
		return "LUAR BIASA! Target 150ha tercapai! Kalian adalah pahlawan hutan sejati! Uu-aa!"
	case percentage > nearlyDonePercent:
		return fmt.Sprintf("Sedikit lagi! %.1fha sudah hijau. Fokus pada tahap penyelesaian!", total)
	case percentage > solidPercent:
		return fmt.Sprintf("Progres tim sangat solid! %d forester bekerja keras. Terus jaga ritme penanaman!", len(members))
	}

	if top, ok := topPlayer(members); ok && top.XP > starPerformerXP {
		return fmt.Sprintf("Uu-aa! Lihat %s, dia sangat produktif! Ayo tim lainnya, jangan mau kalah!", top.Name)
	}
	if percentage > 0 {
		return fmt.Sprintf("Awal yang bagus! %.2fha sudah dikerjakan. Ingat: satu bibit hari ini, satu hutan masa depan!", total)
	}
	return "Uu-aa! Tetap semangat dan jangan lupa sinkronkan data lapanganmu!"
}

// SelfEntry is the forester's own row, used when the shared sheet is unreachable.
func SelfEntry(s domain.GameState) domain.TeamMember {
	name := s.FullName
	if name == "" {
		name = "You"
	}
	return domain.TeamMember{
		Name:       name,
		XP:         s.XP,
		Level:      s.Level,
		LastActive: selfLastActiveText,
		TotalHa:    s.PlantedArea,
	}
}

func totalHa(members []domain.TeamMember) float64 {
	total := 0.0
	for _, m := range members {
		total += m.TotalHa
	}
	return total
}

func topPlayer(members []domain.TeamMember) (domain.TeamMember, bool) {
	if len(members) == 0 {
		return domain.TeamMember{}, false
	}
	return slices.MaxFunc(members, func(a, b domain.TeamMember) int {
		return cmp.Compare(a.XP, b.XP)
	}), true
}
