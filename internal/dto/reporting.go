package dto

import (
	"github.com/openbooks/openbooks/internal/core/ledger"
)

// StatementsResponse carries the statement split plus both totals blocks.
// Diff in the balance sheet totals must be near zero for a balanced ledger.
type StatementsResponse struct {
	PnL                []ledger.StatementRow      `json:"pnl"`
	BalanceSheet       []ledger.StatementRow      `json:"bs"`
	PnLTotals          ledger.PnLSummary          `json:"pnlTotals"`
	BalanceSheetTotals ledger.BalanceSheetSummary `json:"bsTotals"`
}

// CashFlowResponse carries both cash-flow derivations for the same window.
type CashFlowResponse struct {
	Direct   ledger.CashFlow         `json:"direct"`
	Indirect ledger.IndirectCashFlow `json:"indirect"`
}

// AccountAnomaly flags an account whose current-period movement deviates
// from its trailing three-month baseline.
type AccountAnomaly struct {
	AccountID string     `json:"accountId"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Values    [4]float64 `json:"values"`
	Z         float64    `json:"z"`
	Mean      float64    `json:"mean"`
	SD        float64    `json:"sd"`
	Flagged   bool       `json:"flagged"`
}
