package repositories

import (
	"context"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// AccountRepository defines persistence operations for the chart of
// accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
