package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// CashFlow holds a direct-method cash-flow result. Outflow is accumulated
// as a positive magnitude.
type CashFlow struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	NetCash decimal.Decimal `json:"netCash"`
}

// DirectCashFlow derives cash flow from postings against the designated
// cash accounts: per-line net = baseDebit - baseCredit, accumulated into
// inflow when >= 0 and into outflow (as magnitude) otherwise.
func DirectCashFlow(lines []domain.JournalLine, cashAccountIDs []string) CashFlow {
	cashSet := make(map[string]struct{}, len(cashAccountIDs))
	for _, id := range cashAccountIDs {
		cashSet[id] = struct{}{}
	}
	cf := CashFlow{Inflow: decimal.Zero, Outflow: decimal.Zero}
	for _, l := range lines {
		if _, ok := cashSet[l.AccountID]; !ok {
			continue
		}
		net := l.BaseDebitOrNative().Sub(l.BaseCreditOrNative())
		if net.IsNegative() {
			cf.Outflow = cf.Outflow.Add(net.Neg())
		} else {
			cf.Inflow = cf.Inflow.Add(net)
		}
	}
	cf.NetCash = cf.Inflow.Sub(cf.Outflow)
	return cf
}

// IndirectCashFlowInput carries the pieces of a simplified indirect-method
// derivation. Deltas are balance changes over the reporting window.
type IndirectCashFlowInput struct {
	NetIncome      decimal.Decimal `json:"netIncome"`
	DeltaAR        decimal.Decimal `json:"deltaAR"`
	DeltaAP        decimal.Decimal `json:"deltaAP"`
	DeltaInventory decimal.Decimal `json:"deltaInventory"`
	Depreciation   decimal.Decimal `json:"depreciation"`
	Other          decimal.Decimal `json:"other"`
}

// IndirectCashFlow is the indirect-method result. WorkingCapital is the
// combined working-capital adjustment.
type IndirectCashFlow struct {
	NetCash        decimal.Decimal `json:"netCash"`
	WorkingCapital decimal.Decimal `json:"wc"`
	Depreciation   decimal.Decimal `json:"depreciation"`
	Other          decimal.Decimal `json:"other"`
}

// ComputeIndirectCashFlow applies the working-capital adjustment
// wc = -dAR + dAP - dInventory: growth in receivables or inventory consumes
// cash, growth in payables releases it. netCash = netIncome + depreciation
// + wc + other.
func ComputeIndirectCashFlow(in IndirectCashFlowInput) IndirectCashFlow {
	wc := in.DeltaAR.Neg().Add(in.DeltaAP).Sub(in.DeltaInventory)
	return IndirectCashFlow{
		NetCash:        in.NetIncome.Add(in.Depreciation).Add(wc).Add(in.Other),
		WorkingCapital: wc,
		Depreciation:   in.Depreciation,
		Other:          in.Other,
	}
}
