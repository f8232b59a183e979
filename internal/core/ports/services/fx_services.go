package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/dto"
)

// FxService manages per-day conversion rates to the base currency.
type FxService interface {
	SetRate(ctx context.Context, req dto.UpsertRateRequest, userID string) (*domain.ExchangeRate, error)
	// RateFor returns the stored rate for (date, currency). A missing rate
	// resolves to 1 (same as base) and is logged as a warning rather than
	// failing.
	RateFor(ctx context.Context, date time.Time, currency string) (decimal.Decimal, error)
}
