package eventlog

import "time"

// DefaultRetentionDays is how long audit entries are kept when no retention
// is configured.
const DefaultRetentionDays = 90

// DefaultQueryLimit caps activity queries that do not set a limit.
const DefaultQueryLimit = 50

// CleanupInterval is how often the retention job runs.
const CleanupInterval = 24 * time.Hour

// Metadata keys
const (
	MetadataKeyVersion = "version"
)

// Log messages - service events
const (
	LogMsgSubscribed        = "Event log subscribed"
	LogMsgPayloadEncodeFail = "Event payload could not be encoded, logging without payload"
	LogMsgFailedToLogEvent  = "Failed to log event to database"
	LogMsgEventLogged       = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys
const (
	LogFieldType          = "type"
	LogFieldUserID        = "user_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retentionDays"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deletedCount"
)
