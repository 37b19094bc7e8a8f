package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Logger configuration
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	// LogFileRetentionCount is how many old log files survive a startup.
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting Pokemonkey"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// Event system defaults
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgDiscordNotifierRegistered      = "Discord notifier registered"
	LogMsgDiscordNotifierDisabled        = "Discord notifier disabled, no webhook configured"
	ErrMsgFailedCreateDiscordSession     = "failed to create discord session"
)

// Catalog and storage messages
const (
	LogMsgCatalogLoaded         = "Catalog loaded"
	LogMsgStoresOpened          = "Stores opened"
	LogMsgMigrationsApplied     = "Database migrations applied"
	ErrMsgFailedLoadCatalog     = "failed to load catalog"
	ErrMsgFailedConnectDatabase = "failed to connect to database"
	ErrMsgFailedMigrateDatabase = "failed to migrate database"
	ErrMsgFailedOpenLocalStore  = "failed to open local store"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgShiftWorkerFailed          = "Shift start worker shutdown failed"
	LogMsgSessionsShutdownFailed     = "Session service shutdown failed"
	LogMsgLocalStoreCloseFailed      = "Local store close failed"
	LogMsgTracingShutdownFailed      = "Tracing shutdown failed"
)
