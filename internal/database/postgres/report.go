package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// ReportRepository is the shared field report log.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Append inserts a report. Re-sending the same report id is a no-op.
func (r *ReportRepository) Append(ctx context.Context, report domain.FieldReport) error {
	query := `
		INSERT INTO field_reports (
			report_id, user_id, user_name, mission_id, mission_title, activity_type,
			duration_minutes, raw_quantity, unit_type, achieved, xp_gained, notes,
			photo_data, reported_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (report_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		report.ID,
		report.UserID,
		report.UserName,
		report.MissionID,
		report.MissionTitle,
		report.ActivityType,
		report.DurationMinutes,
		report.RawQuantity,
		report.UnitType,
		report.Achieved,
		report.XPGained,
		report.Notes,
		report.PhotoData,
		report.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append report: %w", err)
	}
	return nil
}

// ListByUser returns a user's reports, newest first
func (r *ReportRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.FieldReport, error) {
	if limit <= 0 {
		limit = DefaultReportLimit
	}

	query := `
		SELECT report_id, user_id, user_name, mission_id, mission_title, activity_type,
		       duration_minutes, raw_quantity, unit_type, achieved, xp_gained, notes,
		       photo_data, reported_at
		FROM field_reports
		WHERE user_id = $1
		ORDER BY reported_at DESC, report_id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FieldReport, error) {
		var rep domain.FieldReport
		err := row.Scan(
			&rep.ID,
			&rep.UserID,
			&rep.UserName,
			&rep.MissionID,
			&rep.MissionTitle,
			&rep.ActivityType,
			&rep.DurationMinutes,
			&rep.RawQuantity,
			&rep.UnitType,
			&rep.Achieved,
			&rep.XPGained,
			&rep.Notes,
			&rep.PhotoData,
			&rep.Timestamp,
		)
		return rep, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reports: %w", err)
	}
	return reports, nil
}
