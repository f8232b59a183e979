package repositories

import (
	"context"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// PeriodRepository defines persistence operations for period closings.
// Existence of a closing record is the lock.
type PeriodRepository interface {
	FindClosing(ctx context.Context, period domain.Period) (*domain.PeriodClosing, error)
	SaveClosing(ctx context.Context, closing domain.PeriodClosing) error
	DeleteClosing(ctx context.Context, period domain.Period) error
}
