package dto

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// CreateDocumentLine is one item of a document creation request. Debit and
// Credit are only meaningful for general journal vouchers.
type CreateDocumentLine struct {
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	AccountID   string          `json:"accountId"`
	TaxCode     string          `json:"taxCode"`
}

// CreateDocumentRequest defines the payload for creating and posting a
// business document. Posting generates exactly one journal entry.
type CreateDocumentRequest struct {
	DocType          string               `json:"docType" binding:"required,doctype"`
	Date             string               `json:"date" binding:"required,datetime=2006-01-02"`
	Period           string               `json:"period" binding:"omitempty,period"`
	Currency         string               `json:"currency" binding:"required,len=3"`
	FxRate           decimal.Decimal      `json:"fxRate"`
	CounterpartyType string               `json:"counterpartyType"`
	CounterpartyID   string               `json:"counterpartyId"`
	Ref              string               `json:"ref"`
	Memo             string               `json:"memo"`
	Lines            []CreateDocumentLine `json:"lines"`
}

// DocumentResponse bundles a document with the journal entry its posting
// produced.
type DocumentResponse struct {
	Document domain.Document       `json:"document"`
	Lines    []domain.DocumentLine `json:"lines,omitempty"`
	Entry    *domain.JournalEntry  `json:"entry,omitempty"`
}
