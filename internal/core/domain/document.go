package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocType identifies the business meaning of a document and selects the
// journal mapping template used when it is posted.
type DocType string

const (
	ARInvoice  DocType = "ar_invoice"
	ARPayment  DocType = "ar_payment"
	APInvoice  DocType = "ap_invoice"
	APPayment  DocType = "ap_payment"
	GeneralDoc DocType = "general"
)

// ParseDocType normalizes and validates a document type string. Unknown
// types are rejected at the boundary rather than at dispatch time.
func ParseDocType(s string) (DocType, error) {
	switch t := DocType(strings.ToLower(strings.TrimSpace(s))); t {
	case ARInvoice, ARPayment, APInvoice, APPayment, GeneralDoc:
		return t, nil
	default:
		return "", fmt.Errorf("unknown document type %q", s)
	}
}

// Document is a business-facing record (invoice, payment, voucher) that is
// the upstream source of exactly one journal entry when posted.
type Document struct {
	DocID            string          `json:"id"`
	DocType          DocType         `json:"docType"`
	Date             time.Time       `json:"date"`
	Period           Period          `json:"period"`
	Currency         string          `json:"currency"`
	FxRate           decimal.Decimal `json:"fxRate"`
	CounterpartyType string          `json:"counterpartyType"`
	CounterpartyID   string          `json:"counterpartyId"`
	Ref              string          `json:"ref"`
	Memo             string          `json:"memo"`
	Status           string          `json:"status"`
	AuditFields
}

// DocumentLine is a single item on a document. Debit/Credit are only used
// by general journal vouchers, whose lines are already signed postings.
type DocumentLine struct {
	LineNo      int             `json:"lineNo"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	Debit       decimal.Decimal `json:"debit,omitempty"`
	Credit      decimal.Decimal `json:"credit,omitempty"`
	AccountID   string          `json:"accountId"`
	TaxCode     string          `json:"taxCode"`
}

// LineAmount returns the line amount, computing qty x unitPrice when no
// explicit amount was given.
func (l DocumentLine) LineAmount() decimal.Decimal {
	if !l.Amount.IsZero() {
		return l.Amount
	}
	if l.Qty.IsZero() && l.UnitPrice.IsZero() {
		return decimal.Zero
	}
	qty := l.Qty
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}
	return qty.Mul(l.UnitPrice)
}
