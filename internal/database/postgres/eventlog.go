package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Pokemonkey_Go/internal/eventlog"
)

// EventLogRepository stores the session event audit trail
type EventLogRepository struct {
	db *pgxpool.Pool
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

// LogEvent stores an event in the database
func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, userID *string, payload, metadata map[string]interface{}) error {
	query := `
		INSERT INTO event_log (event_type, user_id, payload, metadata)
		VALUES ($1, $2, $3, $4)
	`

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}

	var metadataJSON []byte
	if metadata != nil {
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to encode event metadata: %w", err)
		}
	}

	if _, err := r.db.Exec(ctx, query, eventType, userID, payloadJSON, metadataJSON); err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// GetEvents retrieves events based on filter criteria, newest first
func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT id, event_type, user_id, payload, metadata, created_at
		FROM event_log
		WHERE 1=1`)

	args := []interface{}{}
	arg := func(clause string, v interface{}) {
		args = append(args, v)
		fmt.Fprintf(&qb, clause, len(args))
	}

	if filter.UserID != nil {
		arg(" AND user_id = $%d", *filter.UserID)
	}
	if filter.EventType != nil {
		arg(" AND event_type = $%d", *filter.EventType)
	}
	if filter.Since != nil {
		arg(" AND created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		arg(" AND created_at <= $%d", *filter.Until)
	}

	qb.WriteString(" ORDER BY created_at DESC, id DESC")

	if filter.Limit > 0 {
		arg(" LIMIT $%d", filter.Limit)
	}

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CleanupOldEvents removes events older than the specified number of days
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	query := `
		DELETE FROM event_log
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`

	result, err := r.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up events: %w", err)
	}
	return result.RowsAffected(), nil
}

func scanEvents(rows pgx.Rows) ([]eventlog.Event, error) {
	var events []eventlog.Event

	for rows.Next() {
		var evt eventlog.Event
		var payloadJSON, metadataJSON []byte

		if err := rows.Scan(
			&evt.ID,
			&evt.EventType,
			&evt.UserID,
			&payloadJSON,
			&metadataJSON,
			&evt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		if err := json.Unmarshal(payloadJSON, &evt.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode event payload: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &evt.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode event metadata: %w", err)
			}
		}

		events = append(events, evt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
