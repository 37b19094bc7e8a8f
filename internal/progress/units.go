package progress

import (
	"fmt"
	"math"
	"strings"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// UnitKind is the unit a field report was measured in. The set is closed;
// Normalize switches over every value and the exhaustive linter guards it.
type UnitKind uint8

const (
	UnitHectare UnitKind = iota + 1
	UnitSeedling
	UnitHour
	UnitDay
	UnitWorker
	UnitMeter
)

var unitNames = map[UnitKind]string{
	UnitHectare:  "ha",
	UnitSeedling: "bibit",
	UnitHour:     "jam",
	UnitDay:      "hari",
	UnitWorker:   "orang",
	UnitMeter:    "meter",
}

// UnitKinds lists every unit in display order.
var UnitKinds = []UnitKind{UnitHectare, UnitSeedling, UnitHour, UnitDay, UnitWorker, UnitMeter}

func (u UnitKind) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("UnitKind(%d)", uint8(u))
}

// ParseUnit maps a wire tag such as "hari" to its UnitKind.
func ParseUnit(tag string) (UnitKind, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for kind, name := range unitNames {
		if name == tag {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrInvalidUnit, tag)
}

// MarshalText implements encoding.TextMarshaler.
func (u UnitKind) MarshalText() ([]byte, error) {
	name, ok := unitNames[u]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidUnit, uint8(u))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UnitKind) UnmarshalText(text []byte) error {
	kind, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = kind
	return nil
}

// EffectiveCapacity returns the capacity used for conversion.
func EffectiveCapacity(capacityPerDay float64) float64 {
	if capacityPerDay <= 0 {
		return DefaultCapacityPerDay
	}
	return capacityPerDay
}

// Normalize converts a reported quantity into the mission's native unit using
// the mission's daily capacity as the baseline.
func Normalize(value float64, unit UnitKind, capacityPerDay float64) (float64, error) {
	capacity := EffectiveCapacity(capacityPerDay)

	switch unit {
	case UnitHectare, UnitSeedling:
		return value, nil
	case UnitHour:
		return value * (capacity / HoursPerShift), nil
	case UnitDay:
		return value * capacity, nil
	case UnitWorker:
		return value * capacity / WorkersPerCrew, nil
	case UnitMeter:
		return value / MetersPerHectare, nil
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrInvalidUnit, unit)
}

// ReportXP is the XP granted for a report of the given normalized value.
func ReportXP(normalized float64) int {
	bonus := int(math.Floor(normalized*XPPerUnit + xpFloorEpsilon))
	if bonus < 0 {
		bonus = 0
	}
	return BaseReportXP + bonus
}
