package domain

// WorkPlan is one entry in the scheduling memo.
type WorkPlan struct {
	ID          string `json:"id"`
	Date        string `json:"date"`      // YYYY-MM-DD
	StartTime   string `json:"startTime"` // HH:mm
	EndTime     string `json:"endTime"`   // HH:mm
	Description string `json:"description"`
	IsDone      bool   `json:"isDone"`
}
