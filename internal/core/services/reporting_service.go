package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/core/ledger"
	portsrepo "github.com/openbooks/openbooks/internal/core/ports/repositories"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/dto"
	"github.com/openbooks/openbooks/internal/middleware"
)

// anomalyZThreshold flags month-over-month movements beyond this many
// standard deviations.
const anomalyZThreshold = 2.0

// reportingService aggregates posted lines into reports.
type reportingService struct {
	entryRepo  portsrepo.EntryRepository
	accountSvc portssvc.AccountService
}

// NewReportingService creates a new ReportingService.
func NewReportingService(entryRepo portsrepo.EntryRepository, accountSvc portssvc.AccountService) portssvc.ReportingService {
	return &reportingService{entryRepo: entryRepo, accountSvc: accountSvc}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// loadRows aggregates the trial balance for a window and warns about lines
// posted to accounts missing from the chart (tolerated, but a data-quality
// gap worth surfacing).
func (s *reportingService) loadRows(ctx context.Context, from, to time.Time) ([]ledger.TrialBalanceRow, map[string]domain.Account, error) {
	lines, err := s.entryRepo.ListLinesByDateRange(ctx, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load journal lines: %w", err)
	}
	accounts, err := s.accountSvc.AccountsByID(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := ledger.AggregateTrialBalance(lines, accounts)
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, r := range rows {
		if _, ok := accounts[r.AccountID]; !ok {
			logger.Warn("Journal lines reference an account missing from the chart",
				slog.String("account_id", r.AccountID))
		}
	}
	return rows, accounts, nil
}

// TrialBalance aggregates base-currency debits/credits per account over
// [from, to], sorted by account code for presentation.
func (s *reportingService) TrialBalance(ctx context.Context, from, to time.Time) ([]ledger.TrialBalanceRow, error) {
	rows, accounts, err := s.loadRows(ctx, from, to)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return accountSortKey(accounts, rows[i].AccountID) < accountSortKey(accounts, rows[j].AccountID)
	})
	return rows, nil
}

// accountSortKey orders rows by chart code, falling back to the raw id for
// unknown accounts so they group at a stable position.
func accountSortKey(accounts map[string]domain.Account, accountID string) string {
	if acc, ok := accounts[accountID]; ok && acc.Code != "" {
		return acc.Code
	}
	return "~" + accountID
}

// Statements splits the trial balance into P&L and balance sheet rows and
// computes both totals blocks.
func (s *reportingService) Statements(ctx context.Context, from, to time.Time) (*dto.StatementsResponse, error) {
	rows, accounts, err := s.loadRows(ctx, from, to)
	if err != nil {
		return nil, err
	}

	pnl, bs := ledger.SplitStatements(rows, accounts)
	byCode := func(rows []ledger.StatementRow) {
		sort.SliceStable(rows, func(i, j int) bool {
			return accountSortKey(accounts, rows[i].AccountID) < accountSortKey(accounts, rows[j].AccountID)
		})
	}
	byCode(pnl)
	byCode(bs)

	resp := &dto.StatementsResponse{
		PnL:                pnl,
		BalanceSheet:       bs,
		PnLTotals:          ledger.SummarizePnL(pnl),
		BalanceSheetTotals: ledger.SummarizeBalanceSheet(bs),
	}

	if !resp.BalanceSheetTotals.Diff.IsZero() {
		middleware.GetLoggerFromCtx(ctx).Warn("Balance sheet does not tie out",
			slog.String("diff", resp.BalanceSheetTotals.Diff.String()),
			slog.String("from", from.Format("2006-01-02")),
			slog.String("to", to.Format("2006-01-02")))
	}
	return resp, nil
}

// CashFlow derives cash flow for a window both ways: directly from postings
// against cash-flagged accounts, and indirectly from net income plus
// working-capital deltas of AR/AP/inventory-flagged accounts.
func (s *reportingService) CashFlow(ctx context.Context, from, to time.Time) (*dto.CashFlowResponse, error) {
	lines, err := s.entryRepo.ListLinesByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal lines: %w", err)
	}
	accounts, err := s.accountSvc.AccountsByID(ctx)
	if err != nil {
		return nil, err
	}

	var cashIDs []string
	for _, a := range accounts {
		if a.Flags.IsCash {
			cashIDs = append(cashIDs, a.AccountID)
		}
	}
	direct := ledger.DirectCashFlow(lines, cashIDs)

	rows := ledger.AggregateTrialBalance(lines, accounts)
	pnl, _ := ledger.SplitStatements(rows, accounts)
	in := ledger.IndirectCashFlowInput{NetIncome: ledger.SummarizePnL(pnl).Net}
	for _, r := range rows {
		acc, ok := accounts[r.AccountID]
		if !ok {
			continue
		}
		switch {
		case acc.Flags.IsAR:
			in.DeltaAR = in.DeltaAR.Add(r.Net)
		case acc.Flags.IsAP:
			// Payables are credit-nature; a growing balance is a negative
			// net, so flip the sign to express the delta as growth.
			in.DeltaAP = in.DeltaAP.Add(r.Net.Neg())
		case acc.Flags.IsInventory:
			in.DeltaInventory = in.DeltaInventory.Add(r.Net)
		}
	}

	return &dto.CashFlowResponse{
		Direct:   direct,
		Indirect: ledger.ComputeIndirectCashFlow(in),
	}, nil
}

// Anomalies scores every account's movement in the given period against
// its trailing three months.
func (s *reportingService) Anomalies(ctx context.Context, period domain.Period) ([]dto.AccountAnomaly, error) {
	accounts, err := s.accountSvc.AccountsByID(ctx)
	if err != nil {
		return nil, err
	}

	// Month nets per account over [period-3, period], oldest first.
	months := []domain.Period{period.Prev().Prev().Prev(), period.Prev().Prev(), period.Prev(), period}
	series := make(map[string][4]float64)
	for i, m := range months {
		lines, err := s.entryRepo.ListLinesByDateRange(ctx, m.Start(), m.End())
		if err != nil {
			return nil, fmt.Errorf("failed to load journal lines for %s: %w", m, err)
		}
		for _, row := range ledger.AggregateTrialBalance(lines, accounts) {
			values := series[row.AccountID]
			values[i] = row.Net.InexactFloat64()
			series[row.AccountID] = values
		}
	}

	anomalies := make([]dto.AccountAnomaly, 0, len(series))
	for accountID, values := range series {
		score := ledger.AnomalyScore(values[:])
		a := dto.AccountAnomaly{
			AccountID: accountID,
			Name:      accountID,
			Values:    values,
			Z:         score.Z,
			Mean:      score.Mean,
			SD:        score.SD,
			Flagged:   score.Z >= anomalyZThreshold || score.Z <= -anomalyZThreshold,
		}
		if acc, ok := accounts[accountID]; ok {
			a.Code = acc.Code
			a.Name = acc.Name
		}
		anomalies = append(anomalies, a)
	}
	sort.SliceStable(anomalies, func(i, j int) bool {
		return accountSortKey(accounts, anomalies[i].AccountID) < accountSortKey(accounts, anomalies[j].AccountID)
	})
	return anomalies, nil
}
