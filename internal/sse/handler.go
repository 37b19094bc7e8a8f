package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/Pokemonkey_Go/internal/auth"
)

// Handler streams the caller's events. Query parameters: types, a comma
// separated filter; scope, "self" (default) or "team".
// @Summary Live event stream
// @Description Server-sent events for the caller's progress and, with scope=team, team milestones
// @Tags events
// @Produce text/event-stream
// @Param types query string false "Comma separated event types"
// @Param scope query string false "self or team"
// @Security BearerAuth
// @Router /api/v1/me/events [get]
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := http.NewResponseController(w)
		// Streams outlive the server's write timeout.
		_ = rc.SetWriteDeadline(time.Time{})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		var eventTypes []string
		if filter := r.URL.Query().Get("types"); filter != "" {
			for _, t := range strings.Split(filter, ",") {
				if t = strings.TrimSpace(t); t != "" {
					eventTypes = append(eventTypes, t)
				}
			}
		}

		userID := auth.UserIDFromContext(r.Context())
		client := hub.Register(userID, r.URL.Query().Get("scope"), eventTypes)
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"user_id", userID,
			"scope", client.Scope,
			"filters", eventTypes)

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID, "user_id", userID)
		}()

		send := func(e Event) bool {
			msg, err := FormatSSEMessage(e)
			if err != nil {
				slog.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				slog.Warn(LogMsgWriteError, "error", err)
				return false
			}
			if err := rc.Flush(); err != nil {
				slog.Warn(LogMsgWriteError, "error", err)
				return false
			}
			return true
		}

		connected := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			UserID:    userID,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]any{"clientId": client.ID, "scope": client.Scope, "filters": eventTypes},
		}
		if !send(connected) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					return
				}
				if !send(event) {
					return
				}

			case <-ticker.C:
				if !send(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
