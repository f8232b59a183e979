package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	portsrepo "github.com/openbooks/openbooks/internal/core/ports/repositories"
)

// PgxExchangeRateRepository persists per-day currency rates.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewExchangeRateRepository creates a repository for exchange rate data.
func NewExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

// UpsertRate stores a rate for a (date, currency) pair, replacing any
// previous value for that day.
func (r *PgxExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (date, currency, rate_to_base, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date, currency) DO UPDATE
		SET rate_to_base = EXCLUDED.rate_to_base,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query, rate.Date, rate.Currency, rate.RateToBase, rate.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert rate for %s on %s: %w",
			rate.Currency, rate.Date.Format("2006-01-02"), err)
	}
	return nil
}

// FindRate fetches the stored rate for a (date, currency) pair.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, date time.Time, currency string) (*domain.ExchangeRate, error) {
	query := `SELECT date, currency, rate_to_base, updated_at FROM exchange_rates WHERE date = $1 AND currency = $2;`
	var rate domain.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, date, currency).Scan(&rate.Date, &rate.Currency, &rate.RateToBase, &rate.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
	}
	return &rate, nil
}
