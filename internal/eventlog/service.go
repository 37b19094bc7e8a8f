package eventlog

import (
	"context"
	"log/slog"

	"github.com/osse101/Pokemonkey_Go/internal/event"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
)

// Service records every published session event in the audit log and serves
// a forester's recent activity from it.
type Service interface {
	Subscribe(bus event.Bus) error

	// Activity returns a user's audit entries, newest first.
	Activity(ctx context.Context, userID string, limit int) ([]Event, error)

	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LoggedTypes are the event types written to the audit log.
var LoggedTypes = []event.Type{
	event.UserLoggedIn,
	event.ReportSubmitted,
	event.MissionStarted,
	event.MissionCompleted,
	event.MissionUnlocked,
	event.LevelUp,
	event.SkinPurchased,
	event.SyncFailed,
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, t := range LoggedTypes {
		bus.Subscribe(t, s.handleEvent)
	}
	slog.Info(LogMsgSubscribed, "types", len(LoggedTypes))
	return nil
}

func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := payloadMap(evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadEncodeFail, LogFieldType, evt.Type, LogFieldError, err)
		payload = map[string]interface{}{}
	}

	var userID *string
	if evt.UserID != "" {
		id := evt.UserID
		userID = &id
	}

	var metadata map[string]interface{}
	if evt.Version != "" {
		metadata = map[string]interface{}{MetadataKeyVersion: evt.Version}
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, payload, metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldType, evt.Type, LogFieldUserID, evt.UserID, LogFieldError, err)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldUserID, evt.UserID)
	return nil
}

// payloadMap flattens a typed payload into the JSON object stored in the log.
func payloadMap(p interface{}) (map[string]interface{}, error) {
	m, err := event.DecodePayload[map[string]interface{}](p)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]interface{}{}
	}
	return m, nil
}

func (s *service) Activity(ctx context.Context, userID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	return s.repo.GetEvents(ctx, EventFilter{UserID: &userID, Limit: limit})
}

func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
