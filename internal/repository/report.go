package repository

import (
	"context"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

// Report is the append-only field report log.
type Report interface {
	Append(ctx context.Context, report domain.FieldReport) error
	// ListByUser returns the newest reports first.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.FieldReport, error)
}
