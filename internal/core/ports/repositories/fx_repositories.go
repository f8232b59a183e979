package repositories

import (
	"context"
	"time"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// ExchangeRateRepository defines persistence operations for per-day
// currency rates, keyed by (date, currency).
type ExchangeRateRepository interface {
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) error
	// FindRate returns apperrors.ErrNotFound when no rate is stored for the
	// date/currency pair.
	FindRate(ctx context.Context, date time.Time, currency string) (*domain.ExchangeRate, error)
}
