package worker

import "time"

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Shift start scheduling
const (
	// ShiftStartStandbyLead is how long before the shift a long-range timer wakes up.
	ShiftStartStandbyLead = 45 * time.Minute

	// ShiftStartJitterTolerance is how early a timer may fire and still run.
	ShiftStartJitterTolerance = 10 * time.Second
)

// Log messages for the shift start worker
const (
	LogMsgShiftStartStandby   = "Shift start standby"
	LogMsgShiftStartScheduled = "Shift start scheduled"
	LogMsgShiftStartRunning   = "Shift started, refreshing stamina"
	LogMsgShiftStartCompleted = "Shift start refresh completed"
	LogMsgShiftStartFailed    = "Shift start refresh failed"
)
