package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "draft"
	Posted EntryStatus = "posted"
)

// EntrySource identifies the upstream record a journal entry was generated
// from, e.g. {type: "document", id: <docID>}.
type EntrySource struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// JournalEntry is the header of a balanced set of debit/credit postings
// recorded on a date. Period is always derivable from Date when absent.
// Entries are never created for a closed period and are immutable once
// posted.
type JournalEntry struct {
	EntryID  string          `json:"id"`
	Date     time.Time       `json:"date"`
	Period   Period          `json:"period"`
	Currency string          `json:"currency"`
	FxRate   decimal.Decimal `json:"fxRate"`
	Memo     string          `json:"memo"`
	Ref      string          `json:"ref"`
	Status   EntryStatus     `json:"status"`
	Source   EntrySource     `json:"source"`
	AuditFields
}

// JournalLine is a single posting within an entry. Within one entry
// sum(debit)=sum(credit) and sum(baseDebit)=sum(baseCredit) within epsilon
// 1e-4. Base amounts are native amounts times the entry fxRate, rounded to
// 6 decimals. A line carries either a debit or a credit by convention.
type JournalLine struct {
	LineNo       int             `json:"lineNo"`
	AccountID    string          `json:"accountId"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	BaseDebit    decimal.Decimal `json:"baseDebit"`
	BaseCredit   decimal.Decimal `json:"baseCredit"`
	DepartmentID string          `json:"departmentId"`
	EntityType   string          `json:"entityType"`
	EntityID     string          `json:"entityId"`
	DocID        string          `json:"docId"`
	Memo         string          `json:"memo"`
}

// BaseDebitOrNative returns the base-currency debit, falling back to the
// native amount when no base amount was recorded (legacy lines stored before
// multi-currency support).
func (l JournalLine) BaseDebitOrNative() decimal.Decimal {
	if l.BaseDebit.IsZero() && !l.Debit.IsZero() {
		return l.Debit
	}
	return l.BaseDebit
}

// BaseCreditOrNative is the credit-side counterpart of BaseDebitOrNative.
func (l JournalLine) BaseCreditOrNative() decimal.Decimal {
	if l.BaseCredit.IsZero() && !l.Credit.IsZero() {
		return l.Credit
	}
	return l.BaseCredit
}
