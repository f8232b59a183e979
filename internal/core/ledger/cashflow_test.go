package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/core/ledger"
)

func TestDirectCashFlow_SplitsInflowAndOutflow(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "cash", BaseDebit: dec("1000")},
		{AccountID: "capital", BaseCredit: dec("1000")},
		{AccountID: "rent", BaseDebit: dec("100")},
		{AccountID: "cash", BaseCredit: dec("100")},
	}

	cf := ledger.DirectCashFlow(lines, []string{"cash"})

	assert.True(t, cf.Inflow.Equal(dec("1000")))
	assert.True(t, cf.Outflow.Equal(dec("100")))
	assert.True(t, cf.NetCash.Equal(dec("900")))
}

func TestDirectCashFlow_IgnoresNonCashAccounts(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "ar", BaseDebit: dec("500")},
		{AccountID: "sales", BaseCredit: dec("500")},
	}

	cf := ledger.DirectCashFlow(lines, []string{"cash"})
	assert.True(t, cf.NetCash.IsZero())
}

func TestComputeIndirectCashFlow_WorkingCapitalSigns(t *testing.T) {
	out := ledger.ComputeIndirectCashFlow(ledger.IndirectCashFlowInput{
		NetIncome:      dec("150"),
		DeltaAR:        dec("500"),
		DeltaAP:        dec("80"),
		DeltaInventory: dec("-200"),
	})

	// wc = -500 + 80 - (-200) = -220
	assert.True(t, out.WorkingCapital.Equal(dec("-220")), "wc %s", out.WorkingCapital)
	assert.True(t, out.NetCash.Equal(dec("-70")), "netCash %s", out.NetCash)
}

// A cash-only ledger must report the same net cash through both methods:
// the direct sum of cash postings and net income adjusted for (zero)
// working-capital deltas.
func TestCashFlow_DirectAndIndirectAgree(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash":  {AccountID: "cash", Type: domain.Asset, Flags: domain.AccountFlags{IsCash: true}},
		"sales": {AccountID: "sales", Type: domain.Revenue},
		"rent":  {AccountID: "rent", Type: domain.Expense},
	}
	lines := []domain.JournalLine{
		{AccountID: "cash", BaseDebit: dec("500")},
		{AccountID: "sales", BaseCredit: dec("500")},
		{AccountID: "rent", BaseDebit: dec("120")},
		{AccountID: "cash", BaseCredit: dec("120")},
	}

	direct := ledger.DirectCashFlow(lines, []string{"cash"})

	rows := ledger.AggregateTrialBalance(lines, accounts)
	pnl, _ := ledger.SplitStatements(rows, accounts)
	indirect := ledger.ComputeIndirectCashFlow(ledger.IndirectCashFlowInput{
		NetIncome: ledger.SummarizePnL(pnl).Net,
	})

	assert.True(t, direct.NetCash.Equal(dec("380")))
	assert.True(t, indirect.NetCash.Equal(direct.NetCash),
		"indirect %s vs direct %s", indirect.NetCash, direct.NetCash)
}

// A credit sale touches no cash; the indirect method must cancel the net
// income against the receivables delta.
func TestCashFlow_CreditSaleNetsToZero(t *testing.T) {
	accounts := map[string]domain.Account{
		"ar":    {AccountID: "ar", Type: domain.Asset, Flags: domain.AccountFlags{IsAR: true}},
		"sales": {AccountID: "sales", Type: domain.Revenue},
	}
	lines := []domain.JournalLine{
		{AccountID: "ar", BaseDebit: dec("500")},
		{AccountID: "sales", BaseCredit: dec("500")},
	}

	direct := ledger.DirectCashFlow(lines, nil)

	rows := ledger.AggregateTrialBalance(lines, accounts)
	pnl, _ := ledger.SplitStatements(rows, accounts)
	var deltaAR = dec("0")
	for _, r := range rows {
		if accounts[r.AccountID].Flags.IsAR {
			deltaAR = deltaAR.Add(r.Net)
		}
	}
	indirect := ledger.ComputeIndirectCashFlow(ledger.IndirectCashFlowInput{
		NetIncome: ledger.SummarizePnL(pnl).Net,
		DeltaAR:   deltaAR,
	})

	assert.True(t, direct.NetCash.IsZero())
	assert.True(t, indirect.NetCash.IsZero(), "netCash %s", indirect.NetCash)
}
