package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/infrastructure/postgres/generated"
)

// SettingsRepository implements usecase.SettingsRepository.
type SettingsRepository struct {
	queries *generated.Queries
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return newSettingsRepository(pool)
}

func newSettingsRepository(db generated.DBTX) *SettingsRepository {
	return &SettingsRepository{queries: generated.New(db)}
}

// Get returns the settings row, or ErrSettingsNotFound before the first save.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	row, err := r.queries.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}

	return &domain.Settings{
		ReportHeading: row.ReportHeading,
		UpdatedAt:     row.UpdatedAt.Time,
	}, nil
}

// Upsert writes the settings row.
func (r *SettingsRepository) Upsert(ctx context.Context, s *domain.Settings) error {
	return r.queries.UpsertSettings(ctx, generated.UpsertSettingsParams{
		ReportHeading: s.ReportHeading,
		UpdatedAt:     timeToPgTimestamptz(s.UpdatedAt),
	})
}
