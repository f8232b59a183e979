package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	portsrepo "github.com/openbooks/openbooks/internal/core/ports/repositories"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/dto"
	"github.com/openbooks/openbooks/internal/middleware"
)

// fxService manages per-day conversion rates to the base currency.
type fxService struct {
	rateRepo     portsrepo.ExchangeRateRepository
	baseCurrency string
}

// NewFxService creates a new FxService for the given base currency.
func NewFxService(rateRepo portsrepo.ExchangeRateRepository, baseCurrency string) portssvc.FxService {
	return &fxService{
		rateRepo:     rateRepo,
		baseCurrency: strings.ToUpper(baseCurrency),
	}
}

var _ portssvc.FxService = (*fxService)(nil)

// SetRate upserts the rate for a (date, currency) pair.
func (s *fxService) SetRate(ctx context.Context, req dto.UpsertRateRequest, userID string) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.RateToBase.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}

	rate := domain.ExchangeRate{
		Date:       date,
		Currency:   strings.ToUpper(req.Currency),
		RateToBase: req.RateToBase,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
		logger.Error("Failed to upsert exchange rate", slog.String("error", err.Error()), slog.String("currency", rate.Currency), slog.String("date", req.Date))
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	logger.Info("Exchange rate saved", slog.String("currency", rate.Currency), slog.String("date", req.Date), slog.String("rate", rate.RateToBase.String()))
	return &rate, nil
}

// RateFor resolves the rate for (date, currency). The base currency is
// always 1. A missing rate also resolves to 1, compatible with stored data
// that predates multi-currency; the fallback is logged so operators can
// spot data-quality drift.
func (s *fxService) RateFor(ctx context.Context, date time.Time, currency string) (decimal.Decimal, error) {
	currency = strings.ToUpper(currency)
	if currency == "" || currency == s.baseCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindRate(ctx, date, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Warn("No exchange rate stored, defaulting to 1",
				slog.String("currency", currency),
				slog.String("date", date.Format("2006-01-02")))
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, fmt.Errorf("failed to look up exchange rate for %s on %s: %w", currency, date.Format("2006-01-02"), err)
	}
	return rate.RateToBase, nil
}
