// Package catalog loads the mission plan and the skin market from YAML.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
	"github.com/osse101/Pokemonkey_Go/internal/validation"
)

//go:embed data/*.yaml data/*.schema.json
var embedded embed.FS

const (
	missionsFile = "missions.yaml"
	skinsFile    = "skins.yaml"
)

// schemas checks each document's shape before it is decoded.
var schemas = validation.NewSchemaValidator(mustSub(embedded, "data"))

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

func schemaFor(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".schema.json"
}

type missionsDoc struct {
	Missions []domain.Mission `yaml:"missions"`
}

type skinsDoc struct {
	Skins []domain.Skin `yaml:"skins"`
}

// Catalog is the read-only set of missions and skins.
type Catalog struct {
	missions []domain.Mission
	skins    []domain.Skin
}

// Load reads missions.yaml and skins.yaml from dir. A file missing from dir,
// or an empty dir, falls back to the built-in copy.
func Load(dir string) (*Catalog, error) {
	var missions missionsDoc
	if err := readDoc(dir, missionsFile, &missions); err != nil {
		return nil, err
	}
	var skins skinsDoc
	if err := readDoc(dir, skinsFile, &skins); err != nil {
		return nil, err
	}
	return New(missions.Missions, skins.Skins)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// New validates missions and skins and builds a Catalog from them.
func New(missions []domain.Mission, skins []domain.Skin) (*Catalog, error) {
	if err := validateMissions(missions); err != nil {
		return nil, err
	}
	if err := validateSkins(skins); err != nil {
		return nil, err
	}
	return &Catalog{missions: missions, skins: skins}, nil
}

func readDoc(dir, name string, out any) error {
	var (
		data []byte
		err  error
	)
	if dir != "" {
		data, err = os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			data, err = nil, nil
		} else if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
	if data == nil {
		data, err = embedded.ReadFile("data/" + name)
		if err != nil {
			return fmt.Errorf("failed to read built-in %s: %w", name, err)
		}
	}

	if err := schemas.ValidateYAML(data, schemaFor(name)); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func validateMissions(missions []domain.Mission) error {
	if len(missions) == 0 {
		return fmt.Errorf("%w: catalog has no missions", domain.ErrInvalidInput)
	}
	ids := make(map[string]bool, len(missions))
	for _, m := range missions {
		if m.ID == "" {
			return fmt.Errorf("%w: mission without id", domain.ErrInvalidInput)
		}
		if ids[m.ID] {
			return fmt.Errorf("%w: duplicate mission %s", domain.ErrInvalidInput, m.ID)
		}
		ids[m.ID] = true

		switch m.Type {
		case domain.MissionLandPrep, domain.MissionNursery, domain.MissionPlanting:
		default:
			return fmt.Errorf("%w: mission %s has unknown type %q", domain.ErrInvalidInput, m.ID, m.Type)
		}
		if m.Target <= 0 {
			return fmt.Errorf("%w: mission %s needs a positive target", domain.ErrInvalidInput, m.ID)
		}
	}
	for _, m := range missions {
		for _, pre := range m.UnlockedBy {
			if !ids[pre] {
				return fmt.Errorf("%w: mission %s requires unknown mission %s", domain.ErrInvalidInput, m.ID, pre)
			}
		}
	}
	return nil
}

func validateSkins(skins []domain.Skin) error {
	ids := make(map[string]bool, len(skins))
	for _, s := range skins {
		if s.ID == "" {
			return fmt.Errorf("%w: skin without id", domain.ErrInvalidInput)
		}
		if ids[s.ID] {
			return fmt.Errorf("%w: duplicate skin %s", domain.ErrInvalidInput, s.ID)
		}
		if s.Cost < 0 {
			return fmt.Errorf("%w: skin %s has negative cost", domain.ErrInvalidInput, s.ID)
		}
		ids[s.ID] = true
	}
	if !ids[domain.DefaultSkinID] {
		return fmt.Errorf("%w: catalog must contain the %s skin", domain.ErrInvalidInput, domain.DefaultSkinID)
	}
	return nil
}

// Missions returns a copy of the mission plan in catalog order.
func (c *Catalog) Missions() []domain.Mission {
	out := make([]domain.Mission, len(c.missions))
	for i, m := range c.missions {
		m.UnlockedBy = slices.Clone(m.UnlockedBy)
		out[i] = m
	}
	return out
}

// Skins returns a copy of the market.
func (c *Catalog) Skins() []domain.Skin {
	return slices.Clone(c.skins)
}

// Skin looks a skin up by exact id.
func (c *Catalog) Skin(id string) (domain.Skin, bool) {
	for _, s := range c.skins {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Skin{}, false
}

// ResolveSkin finds a skin by id or name. Exact matches win; otherwise the
// closest name within a small edit distance is returned.
func (c *Catalog) ResolveSkin(query string) (domain.Skin, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return domain.Skin{}, fmt.Errorf("%w: empty query", domain.ErrSkinNotFound)
	}

	for _, s := range c.skins {
		if s.ID == q || strings.ToLower(s.Name) == q {
			return s, nil
		}
	}

	best, bestDist := -1, 0
	for i, s := range c.skins {
		for _, cand := range []string{s.ID, strings.ToLower(s.Name)} {
			dist := levenshtein.ComputeDistance(q, cand)
			if dist > fuzzyLimit(len(cand)) {
				continue
			}
			if best < 0 || dist < bestDist {
				best, bestDist = i, dist
			}
		}
	}
	if best < 0 {
		return domain.Skin{}, fmt.Errorf("%w: %s", domain.ErrSkinNotFound, query)
	}
	return c.skins[best], nil
}

func fuzzyLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
