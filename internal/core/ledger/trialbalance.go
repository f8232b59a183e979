package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// TrialBalanceRow is the per-account aggregate of base-currency debits and
// credits. Net is debit minus credit (natural ledger sign).
type TrialBalanceRow struct {
	AccountID string             `json:"accountId"`
	Type      domain.AccountType `json:"type"`
	Debit     decimal.Decimal    `json:"debit"`
	Credit    decimal.Decimal    `json:"credit"`
	Net       decimal.Decimal    `json:"net"`
}

// AggregateTrialBalance groups journal lines by account, summing base
// amounts. Lines without an account are skipped; accounts missing from the
// lookup keep a blank type (callers should surface those as data-quality
// warnings). Output order is first-seen account order; callers needing a
// presentation order sort explicitly.
func AggregateTrialBalance(lines []domain.JournalLine, accountsByID map[string]domain.Account) []TrialBalanceRow {
	index := make(map[string]int)
	rows := make([]TrialBalanceRow, 0)
	for _, l := range lines {
		if l.AccountID == "" {
			continue
		}
		i, ok := index[l.AccountID]
		if !ok {
			i = len(rows)
			index[l.AccountID] = i
			row := TrialBalanceRow{
				AccountID: l.AccountID,
				Debit:     decimal.Zero,
				Credit:    decimal.Zero,
			}
			if acc, found := accountsByID[l.AccountID]; found {
				row.Type = acc.Type
			}
			rows = append(rows, row)
		}
		rows[i].Debit = rows[i].Debit.Add(l.BaseDebitOrNative())
		rows[i].Credit = rows[i].Credit.Add(l.BaseCreditOrNative())
	}
	for i := range rows {
		rows[i].Net = rows[i].Debit.Sub(rows[i].Credit)
	}
	return rows
}

// StatementRow is a trial-balance row enriched with account presentation
// fields for statement rendering.
type StatementRow struct {
	TrialBalanceRow
	Name string `json:"name"`
	Code string `json:"code"`
}

// SplitStatements partitions trial-balance rows into profit-and-loss rows
// (revenue, cogs, expense, other_income, other_expense, tax) and balance
// sheet rows (everything else, including unrecognized types). Rows are
// enriched with name/code/type resolved from the account lookup, falling
// back to the raw account id and blank code when the lookup misses.
func SplitStatements(tbRows []TrialBalanceRow, accountsByID map[string]domain.Account) (pnl, bs []StatementRow) {
	pnl = make([]StatementRow, 0)
	bs = make([]StatementRow, 0)
	for _, r := range tbRows {
		row := StatementRow{TrialBalanceRow: r, Name: r.AccountID}
		if acc, ok := accountsByID[r.AccountID]; ok {
			row.Name = acc.Name
			row.Code = acc.Code
			row.Type = acc.Type
		} else {
			row.Type = ""
		}
		if row.Type.IsPnL() {
			pnl = append(pnl, row)
		} else {
			bs = append(bs, row)
		}
	}
	return pnl, bs
}
