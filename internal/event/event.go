package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version   string      `json:"version"` // Event schema version (e.g., "1.0")
	Type      Type        `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Event types published by the session service
const (
	UserLoggedIn     Type = "user.logged_in"
	ReportSubmitted  Type = "report.submitted"
	MissionStarted   Type = "mission.started"
	MissionCompleted Type = "mission.completed"
	MissionUnlocked  Type = "mission.unlocked"
	LevelUp          Type = "user.level_up"
	SkinPurchased    Type = "skin.purchased"
	SyncFailed       Type = "sync.failed"
)

// Typed event payloads

// UserLoggedInPayloadV1 is the typed payload for login events
type UserLoggedInPayloadV1 struct {
	FullName string `json:"full_name"`
	Level    int    `json:"level"`
}

// ReportSubmittedPayloadV1 is the typed payload for field report events
type ReportSubmittedPayloadV1 struct {
	ReportID     string  `json:"report_id"`
	MissionID    string  `json:"mission_id"`
	MissionTitle string  `json:"mission_title"`
	Unit         string  `json:"unit"`
	RawQuantity  float64 `json:"raw_quantity"`
	Achieved     float64 `json:"achieved"`
	XPGained     int     `json:"xp_gained"`
}

// MissionPayloadV1 is the typed payload for mission lifecycle events
type MissionPayloadV1 struct {
	MissionID string `json:"mission_id"`
	Title     string `json:"title"`
	FullName  string `json:"full_name,omitempty"`
}

// LevelUpPayloadV1 is the typed payload for level up events
type LevelUpPayloadV1 struct {
	FullName string `json:"full_name"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	XP       int    `json:"xp"`
}

// SkinPurchasedPayloadV1 is the typed payload for market purchases
type SkinPurchasedPayloadV1 struct {
	SkinID string `json:"skin_id"`
	Name   string `json:"name"`
	Cost   int    `json:"cost"`
}

// SyncFailedPayloadV1 is the typed payload for failed cloud pushes
type SyncFailedPayloadV1 struct {
	Action  string `json:"action"`
	Version uint64 `json:"version"`
	Error   string `json:"error"`
}

func newEvent(t Type, userID string, payload interface{}) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      t,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// NewUserLoggedInEvent creates a login event
func NewUserLoggedInEvent(userID, fullName string, level int) Event {
	return newEvent(UserLoggedIn, userID, UserLoggedInPayloadV1{FullName: fullName, Level: level})
}

// NewReportSubmittedEvent creates a field report event
func NewReportSubmittedEvent(userID string, p ReportSubmittedPayloadV1) Event {
	return newEvent(ReportSubmitted, userID, p)
}

// NewMissionStartedEvent creates a mission started event
func NewMissionStartedEvent(userID, missionID, title string) Event {
	return newEvent(MissionStarted, userID, MissionPayloadV1{MissionID: missionID, Title: title})
}

// NewMissionCompletedEvent creates a mission completed event
func NewMissionCompletedEvent(userID, fullName, missionID, title string) Event {
	return newEvent(MissionCompleted, userID, MissionPayloadV1{MissionID: missionID, Title: title, FullName: fullName})
}

// NewMissionUnlockedEvent creates a mission unlocked event
func NewMissionUnlockedEvent(userID, missionID, title string) Event {
	return newEvent(MissionUnlocked, userID, MissionPayloadV1{MissionID: missionID, Title: title})
}

// NewLevelUpEvent creates a level up event
func NewLevelUpEvent(userID, fullName string, oldLevel, newLevel, xp int) Event {
	return newEvent(LevelUp, userID, LevelUpPayloadV1{
		FullName: fullName,
		OldLevel: oldLevel,
		NewLevel: newLevel,
		XP:       xp,
	})
}

// NewSkinPurchasedEvent creates a market purchase event
func NewSkinPurchasedEvent(userID, skinID, name string, cost int) Event {
	return newEvent(SkinPurchased, userID, SkinPurchasedPayloadV1{SkinID: skinID, Name: name, Cost: cost})
}

// NewSyncFailedEvent creates a sync failure event
func NewSyncFailedEvent(userID, action string, version uint64, err error) Event {
	return newEvent(SyncFailed, userID, SyncFailedPayloadV1{Action: action, Version: version, Error: err.Error()})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event's type synchronously and joins
// their errors.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
