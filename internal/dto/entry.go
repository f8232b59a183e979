package dto

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/core/ledger"
)

// CreateEntryLine is one posting of a manual journal entry request.
type CreateEntryLine struct {
	AccountID    string          `json:"accountId" binding:"required"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	DepartmentID string          `json:"departmentId"`
	EntityType   string          `json:"entityType"`
	EntityID     string          `json:"entityId"`
	Memo         string          `json:"memo"`
}

// CreateEntryRequest defines the payload for posting a manual journal
// entry. Period is optional and derived from Date when absent.
type CreateEntryRequest struct {
	Date     string            `json:"date" binding:"required,datetime=2006-01-02"`
	Period   string            `json:"period" binding:"omitempty,period"`
	Currency string            `json:"currency" binding:"required,len=3"`
	FxRate   decimal.Decimal   `json:"fxRate"`
	Memo     string            `json:"memo"`
	Ref      string            `json:"ref"`
	Lines    []CreateEntryLine `json:"lines" binding:"required,min=2,dive"`
}

// EntryResponse bundles an entry header with its lines and totals.
type EntryResponse struct {
	Entry  domain.JournalEntry  `json:"entry"`
	Lines  []domain.JournalLine `json:"lines"`
	Totals ledger.Totals        `json:"totals"`
}

// ToEntryResponse builds an EntryResponse, computing totals from the lines.
func ToEntryResponse(entry *domain.JournalEntry, lines []domain.JournalLine) EntryResponse {
	return EntryResponse{
		Entry:  *entry,
		Lines:  lines,
		Totals: ledger.EntryTotals(lines),
	}
}
