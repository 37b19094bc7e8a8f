package team

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

func TestAdvice(t *testing.T) {
	tests := []struct {
		name     string
		members  []domain.TeamMember
		contains string
	}{
		{"empty team", nil, "Lahan masih gersang"},
		{"no hectares yet", []domain.TeamMember{{Name: "A", XP: 9000}}, "Lahan masih gersang"},
		{"target reached", []domain.TeamMember{{Name: "A", TotalHa: 100}, {Name: "B", TotalHa: 50}}, "Target 150ha tercapai"},
		{"nearly done", []domain.TeamMember{{Name: "A", TotalHa: 120}}, "Sedikit lagi! 120.0ha"},
		{"exactly 75 percent is solid", []domain.TeamMember{{Name: "A", TotalHa: 112.5}, {Name: "B"}}, "2 forester bekerja keras"},
		{"star performer", []domain.TeamMember{{Name: "Budi", XP: 8200, TotalHa: 10}, {Name: "Siti", XP: 400, TotalHa: 5}}, "Lihat Budi"},
		{"good start", []domain.TeamMember{{Name: "A", XP: 1000, TotalHa: 1.234}}, "Awal yang bagus! 1.23ha"},
		{"exactly 5000 is not a star", []domain.TeamMember{{Name: "A", XP: 5000, TotalHa: 3}}, "Awal yang bagus!"},
		{"negative totals fall through", []domain.TeamMember{{Name: "A", TotalHa: -2}}, "Tetap semangat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Advice(tt.members), tt.contains)
		})
	}
}

func TestSummarize(t *testing.T) {
	members := []domain.TeamMember{
		{Name: "Siti", XP: 1200, TotalHa: 12.5},
		{Name: "Budi", XP: 4500, TotalHa: 25},
		{Name: "Ani", XP: 1200, TotalHa: 0},
	}

	s := Summarize(members, true)

	assert.Equal(t, []string{"Budi", "Siti", "Ani"}, names(s.Members), "sorted by XP, ties keep input order")
	assert.InDelta(t, 37.5, s.TotalHa, 1e-9)
	assert.InDelta(t, 25.0, s.Percentage, 1e-9)
	assert.Equal(t, TargetHectares, s.TargetHa)
	assert.True(t, s.Online)
	assert.NotEmpty(t, s.Advice)
	assert.Equal(t, "Siti", members[0].Name, "input is not reordered")
}

func TestSummarize_EmptyIsNotNil(t *testing.T) {
	s := Summarize(nil, false)
	assert.NotNil(t, s.Members)
	assert.Empty(t, s.Members)
	assert.False(t, s.Online)
}

func TestSelfEntry(t *testing.T) {
	m := SelfEntry(domain.GameState{FullName: "Siti Aminah", XP: 2100, Level: 3, PlantedArea: 4.2})
	assert.Equal(t, domain.TeamMember{Name: "Siti Aminah", XP: 2100, Level: 3, LastActive: "Sekarang", TotalHa: 4.2}, m)

	assert.Equal(t, "You", SelfEntry(domain.GameState{}).Name)
}

func names(ms []domain.TeamMember) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}
