package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// PnLSummary presents profit-and-loss totals. Expense-family figures are
// positive magnitudes; the identities gross = revenue - cogs,
// ebit = gross - expense + otherIncome - otherExpense and net = ebit - tax
// hold exactly.
type PnLSummary struct {
	Revenue      decimal.Decimal `json:"revenue"`
	COGS         decimal.Decimal `json:"cogs"`
	Expense      decimal.Decimal `json:"expense"`
	OtherIncome  decimal.Decimal `json:"otherIncome"`
	OtherExpense decimal.Decimal `json:"otherExpense"`
	Tax          decimal.Decimal `json:"tax"`
	Gross        decimal.Decimal `json:"gross"`
	EBIT         decimal.Decimal `json:"ebit"`
	Net          decimal.Decimal `json:"net"`
}

// sumType sums the nets of rows of one type with the presentation sign
// applied.
func sumType(rows []StatementRow, t domain.AccountType) decimal.Decimal {
	sign := decimal.NewFromInt(int64(domain.SignForType(t)))
	sum := decimal.Zero
	for _, r := range rows {
		if r.Type == t {
			sum = sum.Add(sign.Mul(r.Net))
		}
	}
	return sum
}

// SummarizePnL computes P&L totals from statement rows. The presentation
// sign per type turns every figure into a positive magnitude for a business
// in its normal posture, so the identities read like a statement.
func SummarizePnL(pnlRows []StatementRow) PnLSummary {
	s := PnLSummary{
		Revenue:      sumType(pnlRows, domain.Revenue),
		COGS:         sumType(pnlRows, domain.COGS),
		Expense:      sumType(pnlRows, domain.Expense),
		OtherIncome:  sumType(pnlRows, domain.OtherIncome),
		OtherExpense: sumType(pnlRows, domain.OtherExpense),
		Tax:          sumType(pnlRows, domain.Tax),
	}
	s.Gross = s.Revenue.Sub(s.COGS)
	s.EBIT = s.Gross.Sub(s.Expense).Add(s.OtherIncome).Sub(s.OtherExpense)
	s.Net = s.EBIT.Sub(s.Tax)
	return s
}

// BalanceSheetSummary presents balance sheet totals. Diff must be (near)
// zero for a balanced ledger; a nonzero Diff is a structural defect, not a
// cosmetic one.
type BalanceSheetSummary struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
	LiabEq      decimal.Decimal `json:"liabEq"`
	Diff        decimal.Decimal `json:"diff"`
}

// SummarizeBalanceSheet computes balance sheet totals. Liability and equity
// nets are credit-nature (negative in debit-minus-credit terms), so they are
// negated to present as positive figures.
func SummarizeBalanceSheet(bsRows []StatementRow) BalanceSheetSummary {
	sum := func(t domain.AccountType) decimal.Decimal {
		total := decimal.Zero
		for _, r := range bsRows {
			if r.Type == t {
				total = total.Add(r.Net)
			}
		}
		return total
	}
	s := BalanceSheetSummary{
		Assets:      sum(domain.Asset),
		Liabilities: sum(domain.Liability).Neg(),
		Equity:      sum(domain.Equity).Neg(),
	}
	s.LiabEq = s.Liabilities.Add(s.Equity)
	s.Diff = s.Assets.Sub(s.LiabEq)
	return s
}
