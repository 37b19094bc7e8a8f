package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

func TestDefault(t *testing.T) {
	c := Default()

	missions := c.Missions()
	require.Len(t, missions, 8)
	assert.Equal(t, "m1", missions[0].ID)
	assert.Equal(t, domain.MissionLandPrep, missions[0].Type)
	assert.Equal(t, 150.0, missions[0].Target)
	assert.Equal(t, 1.66, missions[0].CapacityPerDay)

	last := missions[len(missions)-1]
	assert.Equal(t, "m3", last.ID)
	assert.Equal(t, []string{"m1", "m2_10"}, last.UnlockedBy)

	classic, ok := c.Skin(domain.DefaultSkinID)
	require.True(t, ok)
	assert.Equal(t, 0, classic.Cost)
}

func TestMissions_ReturnsCopy(t *testing.T) {
	c := Default()
	m := c.Missions()
	m[len(m)-1].UnlockedBy[0] = "changed"
	m[0].Title = "changed"

	fresh := c.Missions()
	assert.Equal(t, "m1", fresh[len(fresh)-1].UnlockedBy[0])
	assert.NotEqual(t, "changed", fresh[0].Title)
}

func TestLoad_OverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "missions.yaml"), []byte(`
missions:
  - id: a
    title: Clear
    type: LAND_PREP
    target: 10
  - id: b
    title: Plant
    type: PLANTING
    target: 10
    unlocked_by: [a]
`), 0o600))

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, c.Missions(), 2)
	assert.NotEmpty(t, c.Skins(), "skins fall back to the built-in file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown prerequisite": "missions:\n  - {id: a, type: NURSERY, target: 1, unlocked_by: [zzz]}\n",
		"duplicate id":         "missions:\n  - {id: a, type: NURSERY, target: 1}\n  - {id: a, type: NURSERY, target: 1}\n",
		"bad type":             "missions:\n  - {id: a, type: FISHING, target: 1}\n",
		"zero target":          "missions:\n  - {id: a, type: NURSERY, target: 0}\n",
		"not yaml":             "missions: [",
		"misspelled key":       "missions:\n  - {id: a, type: NURSERY, target: 1, reward: 5}\n",
		"no missions":          "missions: []\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "missions.yaml"), []byte(body), 0o600))
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoad_InvalidSkins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skins.yaml"), []byte(`
skins:
  - id: classic
    name: Monyet Klasik
    cost: 0
    colors: {primary: brown}
`), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "/skins/0/colors/primary")
}

func TestNew_RequiresClassicSkin(t *testing.T) {
	_, err := New(Default().Missions(), []domain.Skin{{ID: "gold", Cost: 5}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveSkin(t *testing.T) {
	c := Default()

	tests := []struct {
		query  string
		wantID string
	}{
		{"ranger", "ranger"},
		{"  RANGER ", "ranger"},
		{"Jagawana", "ranger"},
		{"jagawan", "ranger"},
		{"mandor hutn", "manager"},
		{"golde", "golden"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := c.ResolveSkin(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}

	_, err := c.ResolveSkin("dragon armor")
	assert.ErrorIs(t, err, domain.ErrSkinNotFound)
	_, err = c.ResolveSkin("")
	assert.ErrorIs(t, err, domain.ErrSkinNotFound)
}
