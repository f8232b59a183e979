package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	portsrepo "github.com/openbooks/openbooks/internal/core/ports/repositories"
)

// PgxPeriodRepository persists period closing records.
type PgxPeriodRepository struct {
	BaseRepository
}

// NewPeriodRepository creates a repository for period closing data.
func NewPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

// FindClosing fetches the closing record for a period, if any.
func (r *PgxPeriodRepository) FindClosing(ctx context.Context, period domain.Period) (*domain.PeriodClosing, error) {
	query := `SELECT period, closed_at, closed_by, notes FROM period_closings WHERE period = $1;`
	var c domain.PeriodClosing
	err := r.Pool.QueryRow(ctx, query, period).Scan(&c.Period, &c.ClosedAt, &c.ClosedBy, &c.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan period closing: %w", err)
	}
	return &c, nil
}

// SaveClosing inserts or refreshes a closing record. Closing an already
// closed period just updates who closed it and when. The upsert runs at
// serializable isolation so it conflicts with any entry write that read the
// period as open in the same window.
func (r *PgxPeriodRepository) SaveClosing(ctx context.Context, closing domain.PeriodClosing) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO period_closings (period, closed_at, closed_by, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (period) DO UPDATE
		SET closed_at = EXCLUDED.closed_at,
			closed_by = EXCLUDED.closed_by,
			notes = EXCLUDED.notes;
	`
	if _, err := tx.Exec(ctx, query, closing.Period, closing.ClosedAt, closing.ClosedBy, closing.Notes); err != nil {
		return fmt.Errorf("failed to save closing for %s: %w", closing.Period, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit closing for %s: %w", closing.Period, err)
	}
	return nil
}

// DeleteClosing removes a closing record, reopening the period.
func (r *PgxPeriodRepository) DeleteClosing(ctx context.Context, period domain.Period) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM period_closings WHERE period = $1;`, period)
	if err != nil {
		return fmt.Errorf("failed to delete closing for %s: %w", period, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
