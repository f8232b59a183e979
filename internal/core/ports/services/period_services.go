package services

import (
	"context"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// PeriodService manages period closings. Closing locks a period against
// further postings; reopening is a privileged action that deletes the lock.
type PeriodService interface {
	IsClosed(ctx context.Context, period domain.Period) (bool, error)
	Close(ctx context.Context, period domain.Period, userID, notes string) (*domain.PeriodClosing, error)
	Reopen(ctx context.Context, period domain.Period) error
	Get(ctx context.Context, period domain.Period) (*domain.PeriodClosing, error)
}
