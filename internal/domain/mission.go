package domain

// MissionStatus is the lifecycle state of a mission.
type MissionStatus string

const (
	MissionLocked     MissionStatus = "LOCKED"
	MissionAvailable  MissionStatus = "AVAILABLE"
	MissionInProgress MissionStatus = "IN_PROGRESS"
	MissionCompleted  MissionStatus = "COMPLETED"
)

// Rank orders statuses so transitions can be checked as forward-only.
func (s MissionStatus) Rank() int {
	switch s {
	case MissionLocked:
		return 0
	case MissionAvailable:
		return 1
	case MissionInProgress:
		return 2
	case MissionCompleted:
		return 3
	default:
		return -1
	}
}

// Valid reports whether s is one of the known statuses.
func (s MissionStatus) Valid() bool {
	return s.Rank() >= 0
}

// MissionType groups missions by the kind of field work they track.
type MissionType string

const (
	MissionLandPrep MissionType = "LAND_PREP"
	MissionNursery  MissionType = "NURSERY"
	MissionPlanting MissionType = "PLANTING"
)

// Mission is a trackable unit of work with a target quantity in its native
// unit (hectares or seedlings).
type Mission struct {
	ID             string        `json:"id" yaml:"id"`
	Title          string        `json:"title" yaml:"title"`
	Type           MissionType   `json:"type" yaml:"type"`
	Description    string        `json:"description" yaml:"description"`
	Target         float64       `json:"target" yaml:"target"`
	Current        float64       `json:"current" yaml:"current"`
	Status         MissionStatus `json:"status" yaml:"status"`
	RewardXP       int           `json:"rewardXP" yaml:"reward_xp"`
	DurationDays   int           `json:"durationDays,omitempty" yaml:"duration_days"`
	CapacityPerDay float64       `json:"capacityPerDay,omitempty" yaml:"capacity_per_day"`
	UnlockedBy     []string      `json:"unlockedBy,omitempty" yaml:"unlocked_by"`
}

// RemoteMission is the global progress of one mission as reported by the
// shared endpoint.
type RemoteMission struct {
	Status  MissionStatus `json:"status"`
	Current float64       `json:"current"`
}
