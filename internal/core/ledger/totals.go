// Package ledger is the pure accounting math core: journal totals, balance
// validation, trial-balance aggregation, statement splitting and cash-flow
// derivation. Nothing here performs I/O or holds state; every function is a
// deterministic computation over its inputs and safe for concurrent use.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// baseScale is the fixed rounding applied to base-currency amounts.
const baseScale = 6

// balanceEpsilon absorbs rounding noise from multi-currency conversion. It
// is a tolerance, not permission for genuine imbalance.
var balanceEpsilon = decimal.New(1, -4)

// Totals aggregates the debit/credit sides of a journal entry in native and
// base currency. Diff and BaseDiff are rounded to 6 decimals.
type Totals struct {
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	BaseDebit  decimal.Decimal `json:"baseDebit"`
	BaseCredit decimal.Decimal `json:"baseCredit"`
	Diff       decimal.Decimal `json:"diff"`
	BaseDiff   decimal.Decimal `json:"baseDiff"`
}

// EntryTotals sums native and base-currency amounts across lines. Lines
// without recorded base amounts fall back to their native amounts.
func EntryTotals(lines []domain.JournalLine) Totals {
	t := Totals{
		Debit:      decimal.Zero,
		Credit:     decimal.Zero,
		BaseDebit:  decimal.Zero,
		BaseCredit: decimal.Zero,
	}
	for _, l := range lines {
		t.Debit = t.Debit.Add(l.Debit)
		t.Credit = t.Credit.Add(l.Credit)
		t.BaseDebit = t.BaseDebit.Add(l.BaseDebitOrNative())
		t.BaseCredit = t.BaseCredit.Add(l.BaseCreditOrNative())
	}
	t.Diff = t.Debit.Sub(t.Credit).Round(baseScale)
	t.BaseDiff = t.BaseDebit.Sub(t.BaseCredit).Round(baseScale)
	return t
}

// Balanced is the single balancing gate: true iff |baseDiff| < 1e-4. Any
// code path that persists a journal entry must refuse to post when false.
func Balanced(lines []domain.JournalLine) bool {
	return EntryTotals(lines).BaseDiff.Abs().LessThan(balanceEpsilon)
}

// ToBase converts a native amount to base currency: amount x (fxRate or 1),
// rounded to 6 decimals.
func ToBase(amount, fxRate decimal.Decimal) decimal.Decimal {
	if fxRate.IsZero() {
		fxRate = decimal.NewFromInt(1)
	}
	return amount.Mul(fxRate).Round(baseScale)
}
