package templates

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/core/ledger"
)

// BuildJournalFromDocument materializes a posted journal entry from a
// document and its mapping: header fields are copied from the document,
// lines get sequential 1-based numbers and base-currency amounts, and
// entity fields fall back to the document counterparty.
//
// The mapping strategy is responsible for producing debit=credit in native
// currency; the builder does not enforce it. Callers must check
// ledger.Balanced on the returned lines before persisting.
func BuildJournalFromDocument(doc domain.Document, m Mapping) (domain.JournalEntry, []domain.JournalLine) {
	fxRate := doc.FxRate
	if fxRate.IsZero() {
		fxRate = decimal.NewFromInt(1)
	}
	period := doc.Period
	if period == "" {
		period = domain.PeriodFromDate(doc.Date)
	}

	je := domain.JournalEntry{
		Date:     doc.Date,
		Period:   period,
		Currency: doc.Currency,
		FxRate:   fxRate,
		Memo:     m.Header.Memo,
		Ref:      doc.Ref,
		Status:   domain.Posted,
		Source:   domain.EntrySource{Type: "document", ID: doc.DocID},
	}

	lines := make([]domain.JournalLine, len(m.Lines))
	for i, l := range m.Lines {
		entityType := l.EntityType
		entityID := l.EntityID
		if entityType == "" {
			entityType = doc.CounterpartyType
		}
		if entityID == "" {
			entityID = doc.CounterpartyID
		}
		lines[i] = domain.JournalLine{
			LineNo:     i + 1,
			AccountID:  l.AccountID,
			Debit:      l.Debit,
			Credit:     l.Credit,
			BaseDebit:  ledger.ToBase(l.Debit, fxRate),
			BaseCredit: ledger.ToBase(l.Credit, fxRate),
			EntityType: entityType,
			EntityID:   entityID,
			DocID:      doc.DocID,
			Memo:       l.Memo,
		}
	}
	return je, lines
}

// BuildFromDocType dispatches the document to its mapping template and
// materializes the resulting journal entry in one step.
func BuildFromDocType(doc domain.Document, docLines []domain.DocumentLine, lookup AccountLookup) (domain.JournalEntry, []domain.JournalLine, error) {
	m, err := BuildMapping(doc, docLines, lookup)
	if err != nil {
		return domain.JournalEntry{}, nil, err
	}
	je, lines := BuildJournalFromDocument(doc, m)
	return je, lines, nil
}
