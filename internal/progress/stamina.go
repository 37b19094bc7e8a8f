package progress

import (
	"math"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// ShiftStart returns 07:00 on now's calendar day in now's location.
func ShiftStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), ShiftStartHour, 0, 0, 0, now.Location())
}

// Stamina computes the avatar's stamina at now given the last feeding time.
// Before the shift starts the bar is full; afterwards it drains linearly from
// the later of the last feeding and the shift start, reaching zero after
// DrainDurationHours. The result is always within [0, 100].
func Stamina(lastFeeding, now time.Time) float64 {
	anchor := ShiftStart(now)
	if now.Before(anchor) {
		return domain.MaxStamina
	}

	start := anchor
	if lastFeeding.After(start) {
		start = lastFeeding
	}

	return StaminaAfter(now.Sub(start))
}

// StaminaAfter is the stamina left after draining for elapsed from a full
// bar. Non-positive durations give a full bar.
func StaminaAfter(elapsed time.Duration) float64 {
	switch {
	case elapsed <= 0:
		return domain.MaxStamina
	case elapsed >= DrainDurationHours*time.Hour:
		return 0
	}
	return math.Max(0, domain.MaxStamina-elapsed.Seconds()*DrainPerSecond)
}
