// Package templates maps business documents onto balanced journal entry
// skeletons. Each document type has one mapping strategy; dispatch is by
// typed variant, and unknown types fail hard at the boundary.
package templates

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
)

// DefaultCodes are the chart-of-accounts codes the templates resolve their
// control accounts from.
var DefaultCodes = struct {
	Cash       string
	AR         string
	AP         string
	Sales      string
	COGS       string
	Inventory  string
	Expense    string
	Tax        string
	FxGainLoss string
}{
	Cash:       "1000",
	AR:         "1100",
	AP:         "2100",
	Sales:      "4000",
	COGS:       "5000",
	Inventory:  "1200",
	Expense:    "6000",
	Tax:        "2300",
	FxGainLoss: "7990",
}

// AccountLookup resolves a chart-of-accounts entry by code. A miss yields
// ok=false; templates then emit the line with a blank account id, which
// downstream aggregation skips.
type AccountLookup func(code string) (domain.Account, bool)

// Header carries header-level fields produced by a mapping strategy.
type Header struct {
	Memo string
}

// Line is one mapped posting in native currency. Entity fields are optional;
// the builder falls back to the document counterparty.
type Line struct {
	AccountID  string
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	EntityType string
	EntityID   string
	Memo       string
}

// Mapping is the output of a strategy: a header plus native-currency lines
// whose debits and credits must total equal.
type Mapping struct {
	Header Header
	Lines  []Line
}

func accountID(lookup AccountLookup, code string) string {
	if acc, ok := lookup(code); ok {
		return acc.AccountID
	}
	return ""
}

func docTotal(docLines []domain.DocumentLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range docLines {
		total = total.Add(l.LineAmount())
	}
	return total
}

// arInvoice debits AR and credits sales for the document total.
func arInvoice(lookup AccountLookup, doc domain.Document, docLines []domain.DocumentLine) Mapping {
	total := docTotal(docLines)
	return Mapping{
		Header: Header{Memo: fmt.Sprintf("AR Invoice • %s", doc.Ref)},
		Lines: []Line{
			{AccountID: accountID(lookup, DefaultCodes.AR), Debit: total, EntityType: "customer", EntityID: doc.CounterpartyID},
			{AccountID: accountID(lookup, DefaultCodes.Sales), Credit: total},
		},
	}
}

// arPayment debits cash and credits AR for the document total.
func arPayment(lookup AccountLookup, doc domain.Document, docLines []domain.DocumentLine) Mapping {
	total := docTotal(docLines)
	return Mapping{
		Header: Header{Memo: fmt.Sprintf("AR Payment • %s", doc.Ref)},
		Lines: []Line{
			{AccountID: accountID(lookup, DefaultCodes.Cash), Debit: total, EntityType: "customer", EntityID: doc.CounterpartyID},
			{AccountID: accountID(lookup, DefaultCodes.AR), Credit: total, EntityType: "customer", EntityID: doc.CounterpartyID},
		},
	}
}

// apInvoice debits each document line's own account (or the default expense
// account when the document has no lines) and credits AP for the total.
func apInvoice(lookup AccountLookup, doc domain.Document, docLines []domain.DocumentLine) Mapping {
	total := docTotal(docLines)
	var lines []Line
	if len(docLines) > 0 {
		for _, l := range docLines {
			lines = append(lines, Line{AccountID: l.AccountID, Debit: l.LineAmount(), Memo: l.Description})
		}
	} else {
		lines = []Line{{AccountID: accountID(lookup, DefaultCodes.Expense), Debit: total}}
	}
	lines = append(lines, Line{
		AccountID:  accountID(lookup, DefaultCodes.AP),
		Credit:     total,
		EntityType: "supplier",
		EntityID:   doc.CounterpartyID,
	})
	return Mapping{Header: Header{Memo: fmt.Sprintf("AP Invoice • %s", doc.Ref)}, Lines: lines}
}

// apPayment debits AP and credits cash for the document total.
func apPayment(lookup AccountLookup, doc domain.Document, docLines []domain.DocumentLine) Mapping {
	total := docTotal(docLines)
	return Mapping{
		Header: Header{Memo: fmt.Sprintf("AP Payment • %s", doc.Ref)},
		Lines: []Line{
			{AccountID: accountID(lookup, DefaultCodes.AP), Debit: total, EntityType: "supplier", EntityID: doc.CounterpartyID},
			{AccountID: accountID(lookup, DefaultCodes.Cash), Credit: total},
		},
	}
}

// general passes document lines through as already-signed postings; each
// line names its own account and side.
func general(_ AccountLookup, doc domain.Document, docLines []domain.DocumentLine) Mapping {
	lines := make([]Line, 0, len(docLines))
	for _, l := range docLines {
		lines = append(lines, Line{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Memo:      l.Description,
		})
	}
	return Mapping{Header: Header{Memo: fmt.Sprintf("Journal • %s", doc.Ref)}, Lines: lines}
}

// BuildMapping dispatches to the strategy for the document type.
func BuildMapping(doc domain.Document, docLines []domain.DocumentLine, lookup AccountLookup) (Mapping, error) {
	switch doc.DocType {
	case domain.ARInvoice:
		return arInvoice(lookup, doc, docLines), nil
	case domain.ARPayment:
		return arPayment(lookup, doc, docLines), nil
	case domain.APInvoice:
		return apInvoice(lookup, doc, docLines), nil
	case domain.APPayment:
		return apPayment(lookup, doc, docLines), nil
	case domain.GeneralDoc:
		return general(lookup, doc, docLines), nil
	default:
		return Mapping{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedDocType, doc.DocType)
	}
}
