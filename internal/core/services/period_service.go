package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	portsrepo "github.com/openbooks/openbooks/internal/core/ports/repositories"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/middleware"
)

// periodService manages period closing records.
type periodService struct {
	periodRepo portsrepo.PeriodRepository
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepository) portssvc.PeriodService {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodService = (*periodService)(nil)

// IsClosed reports whether a closing record exists for the period.
func (s *periodService) IsClosed(ctx context.Context, period domain.Period) (bool, error) {
	_, err := s.periodRepo.FindClosing(ctx, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check closing for period %s: %w", period, err)
	}
	return true, nil
}

// Close locks a period. Closing an already closed period updates the
// closing record (upsert semantics).
func (s *periodService) Close(ctx context.Context, period domain.Period, userID, notes string) (*domain.PeriodClosing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	closing := domain.PeriodClosing{
		Period:   period,
		ClosedAt: time.Now().UTC(),
		ClosedBy: userID,
		Notes:    notes,
	}
	if err := s.periodRepo.SaveClosing(ctx, closing); err != nil {
		logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("period", period.String()))
		return nil, fmt.Errorf("failed to close period %s: %w", period, err)
	}

	logger.Info("Period closed", slog.String("period", period.String()), slog.String("closed_by", userID))
	return &closing, nil
}

// Reopen deletes the closing record for a period. Privileged action.
func (s *periodService) Reopen(ctx context.Context, period domain.Period) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.periodRepo.DeleteClosing(ctx, period); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("period %s is not closed: %w", period, err)
		}
		logger.Error("Failed to reopen period", slog.String("error", err.Error()), slog.String("period", period.String()))
		return fmt.Errorf("failed to reopen period %s: %w", period, err)
	}

	logger.Info("Period reopened", slog.String("period", period.String()))
	return nil
}

// Get returns the closing record for a period, or ErrNotFound.
func (s *periodService) Get(ctx context.Context, period domain.Period) (*domain.PeriodClosing, error) {
	closing, err := s.periodRepo.FindClosing(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to find closing for period %s: %w", period, err)
	}
	return closing, nil
}
