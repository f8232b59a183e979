package services

import (
	"context"
	"time"

	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/core/ledger"
	"github.com/openbooks/openbooks/internal/dto"
)

// ReportingService aggregates posted journal lines into trial balances,
// financial statements, cash-flow reports and anomaly flags.
type ReportingService interface {
	TrialBalance(ctx context.Context, from, to time.Time) ([]ledger.TrialBalanceRow, error)
	Statements(ctx context.Context, from, to time.Time) (*dto.StatementsResponse, error)
	CashFlow(ctx context.Context, from, to time.Time) (*dto.CashFlowResponse, error)
	// Anomalies scores each account's current-period movement against its
	// trailing three months.
	Anomalies(ctx context.Context, period domain.Period) ([]dto.AccountAnomaly, error)
}
