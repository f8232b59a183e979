package services

import (
	"context"

	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/dto"
)

// AccountService defines operations over the chart of accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// AccountsByID returns the full chart keyed by account id, the lookup
	// shape the ledger math core consumes.
	AccountsByID(ctx context.Context) (map[string]domain.Account, error)
}
