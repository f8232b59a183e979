package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/openbooks/internal/core/domain"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/core/services"
)

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockEntryRepo  *MockEntryRepository
	mockAccountSvc *MockAccountService
	service        portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewReportingService(suite.mockEntryRepo, suite.mockAccountSvc)
}

func reportingChart() map[string]domain.Account {
	return map[string]domain.Account{
		"cash":  {AccountID: "cash", Code: "1000", Name: "Cash", Type: domain.Asset, Flags: domain.AccountFlags{IsCash: true}},
		"ar":    {AccountID: "ar", Code: "1100", Name: "Accounts Receivable", Type: domain.Asset, Flags: domain.AccountFlags{IsAR: true}},
		"sales": {AccountID: "sales", Code: "4000", Name: "Sales", Type: domain.Revenue},
		"rent":  {AccountID: "rent", Code: "6100", Name: "Rent Expense", Type: domain.Expense},
	}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_SortedByAccountCode() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	lines := []domain.JournalLine{
		{AccountID: "rent", BaseDebit: decimal.NewFromInt(100)},
		{AccountID: "cash", BaseCredit: decimal.NewFromInt(100)},
		{AccountID: "ar", BaseDebit: decimal.NewFromInt(500)},
		{AccountID: "sales", BaseCredit: decimal.NewFromInt(500)},
	}
	suite.mockEntryRepo.On("ListLinesByDateRange", ctx, from, to).Return(lines, nil).Once()
	suite.mockAccountSvc.On("AccountsByID", ctx).Return(reportingChart(), nil).Once()

	rows, err := suite.service.TrialBalance(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 4)
	suite.Equal("cash", rows[0].AccountID)
	suite.Equal("ar", rows[1].AccountID)
	suite.Equal("sales", rows[2].AccountID)
	suite.Equal("rent", rows[3].AccountID)
}

func (suite *ReportingServiceTestSuite) TestStatements_SplitsAndSummarizes() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	lines := []domain.JournalLine{
		{AccountID: "cash", BaseDebit: decimal.NewFromInt(500)},
		{AccountID: "sales", BaseCredit: decimal.NewFromInt(500)},
		{AccountID: "rent", BaseDebit: decimal.NewFromInt(100)},
		{AccountID: "cash", BaseCredit: decimal.NewFromInt(100)},
	}
	suite.mockEntryRepo.On("ListLinesByDateRange", ctx, from, to).Return(lines, nil).Once()
	suite.mockAccountSvc.On("AccountsByID", ctx).Return(reportingChart(), nil).Once()

	resp, err := suite.service.Statements(ctx, from, to)

	suite.Require().NoError(err)
	suite.Len(resp.PnL, 2)
	suite.Len(resp.BalanceSheet, 1)
	suite.True(resp.PnLTotals.Revenue.Equal(decimal.NewFromInt(500)))
	suite.True(resp.PnLTotals.Expense.Equal(decimal.NewFromInt(100)))
	suite.True(resp.PnLTotals.Net.Equal(decimal.NewFromInt(400)))
	suite.True(resp.BalanceSheetTotals.Assets.Equal(decimal.NewFromInt(400)))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_BothMethodsAgreeOnCashOnlyLedger() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	lines := []domain.JournalLine{
		{AccountID: "cash", BaseDebit: decimal.NewFromInt(500)},
		{AccountID: "sales", BaseCredit: decimal.NewFromInt(500)},
		{AccountID: "rent", BaseDebit: decimal.NewFromInt(120)},
		{AccountID: "cash", BaseCredit: decimal.NewFromInt(120)},
	}
	suite.mockEntryRepo.On("ListLinesByDateRange", ctx, from, to).Return(lines, nil).Once()
	suite.mockAccountSvc.On("AccountsByID", ctx).Return(reportingChart(), nil).Once()

	resp, err := suite.service.CashFlow(ctx, from, to)

	suite.Require().NoError(err)
	suite.True(resp.Direct.NetCash.Equal(decimal.NewFromInt(380)))
	suite.True(resp.Indirect.NetCash.Equal(resp.Direct.NetCash),
		"direct %s vs indirect %s", resp.Direct.NetCash, resp.Indirect.NetCash)
}

func (suite *ReportingServiceTestSuite) TestCashFlow_CreditSaleCancelsThroughReceivables() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	lines := []domain.JournalLine{
		{AccountID: "ar", BaseDebit: decimal.NewFromInt(500)},
		{AccountID: "sales", BaseCredit: decimal.NewFromInt(500)},
	}
	suite.mockEntryRepo.On("ListLinesByDateRange", ctx, from, to).Return(lines, nil).Once()
	suite.mockAccountSvc.On("AccountsByID", ctx).Return(reportingChart(), nil).Once()

	resp, err := suite.service.CashFlow(ctx, from, to)

	suite.Require().NoError(err)
	suite.True(resp.Direct.NetCash.IsZero())
	suite.True(resp.Indirect.NetCash.IsZero(), "indirect %s", resp.Indirect.NetCash)
	suite.True(resp.Indirect.WorkingCapital.Equal(decimal.NewFromInt(-500)))
}

func (suite *ReportingServiceTestSuite) TestAnomalies_FlagsSpikeAgainstFlatBaseline() {
	ctx := context.Background()
	period := domain.Period("2025-04")

	suite.mockAccountSvc.On("AccountsByID", ctx).Return(reportingChart(), nil).Once()

	monthLines := func(amount int64) []domain.JournalLine {
		return []domain.JournalLine{
			{AccountID: "rent", BaseDebit: decimal.NewFromInt(amount)},
			{AccountID: "cash", BaseCredit: decimal.NewFromInt(amount)},
		}
	}
	for _, p := range []domain.Period{"2025-01", "2025-02", "2025-03"} {
		suite.mockEntryRepo.On("ListLinesByDateRange", ctx, p.Start(), p.End()).Return(monthLines(10), nil).Once()
	}
	suite.mockEntryRepo.On("ListLinesByDateRange", ctx, period.Start(), period.End()).Return(monthLines(40), nil).Once()

	anomalies, err := suite.service.Anomalies(ctx, period)

	suite.Require().NoError(err)

	byID := make(map[string]float64)
	flagged := make(map[string]bool)
	for _, a := range anomalies {
		byID[a.AccountID] = a.Z
		flagged[a.AccountID] = a.Flagged
	}

	// rent jumped 10,10,10 -> 40: z = 30 against the sd floor of 1.
	suite.InDelta(30.0, byID["rent"], 1e-9)
	suite.True(flagged["rent"])
	// cash mirrored the jump on the credit side: z = -30, also flagged.
	suite.InDelta(-30.0, byID["cash"], 1e-9)
	suite.True(flagged["cash"])
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
