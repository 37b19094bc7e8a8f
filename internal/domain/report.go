package domain

import "time"

// FieldReport is an immutable record of work done in the field. Achieved holds
// the normalized value in the mission's native unit, not the raw quantity.
type FieldReport struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	MissionID       string    `json:"missionId"`
	MissionTitle    string    `json:"missionTitle"`
	ActivityType    string    `json:"activityType"`
	DurationMinutes int       `json:"durationMinutes"`
	RawQuantity     float64   `json:"rawQuantity"`
	UnitType        string    `json:"unitType"`
	Achieved        float64   `json:"achievedUnit"`
	XPGained        int       `json:"xpGained"`
	Notes           string    `json:"notes"`
	PhotoData       string    `json:"photoData,omitempty"`
	UserID          string    `json:"userId,omitempty"`
	UserName        string    `json:"userName,omitempty"`
}

// ReportDraft is what a forester submits before normalization.
type ReportDraft struct {
	MissionID       string
	ActivityType    string
	DurationMinutes int
	Quantity        float64
	Unit            string
	Notes           string
	PhotoData       string
}
