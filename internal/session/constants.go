package session

import "time"

// Defaults applied when Config leaves a field empty
const (
	DefaultSyncTimeout = 15 * time.Second
	DefaultCacheSize   = 16
	DefaultCacheTTL    = 30 * time.Second
	DefaultReportLimit = 50
	MaxReportLimit     = 500
)

// CacheSchemaVersion invalidates cached remote lookups when their shape changes
const CacheSchemaVersion = "1.0"

// Cache keys
const (
	cacheKeyTeam        = "team"
	cacheKeyActiveUsers = "active_users"
)

// Log messages
const (
	LogMsgSessionLoaded        = "Session loaded"
	LogMsgSessionClosed        = "Session closed"
	LogMsgSnapshotFallback     = "No local snapshot, trying shared store"
	LogMsgSharedSaveFailed     = "Shared snapshot save failed"
	LogMsgReportAppendFailed   = "Report log append failed"
	LogMsgPublishFailed        = "Event publish failed"
	LogMsgSyncDropped          = "Cloud sync job dropped"
	LogMsgRemoteLookupFailed   = "Remote lookup failed, using fallback"
	LogMsgGlobalMissionsFailed = "Global mission poll failed"
)

// New avatars spawn at a random spot inside these bounds, in percent of the habitat.
const (
	spawnMinX, spawnSpanX = 10.0, 80.0
	spawnMinY, spawnSpanY = 15.0, 70.0
	spawnFacing           = "right"
)
