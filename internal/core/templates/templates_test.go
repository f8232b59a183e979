package templates_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/core/ledger"
	"github.com/openbooks/openbooks/internal/core/templates"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// testLookup resolves the default control account codes to synthetic ids.
func testLookup(code string) (domain.Account, bool) {
	known := map[string]string{
		templates.DefaultCodes.Cash:    "acc-cash",
		templates.DefaultCodes.AR:      "acc-ar",
		templates.DefaultCodes.AP:      "acc-ap",
		templates.DefaultCodes.Sales:   "acc-sales",
		templates.DefaultCodes.Expense: "acc-expense",
	}
	id, ok := known[code]
	if !ok {
		return domain.Account{}, false
	}
	return domain.Account{AccountID: id, Code: code}, true
}

func testDoc(docType domain.DocType) domain.Document {
	return domain.Document{
		DocID:            "doc-1",
		DocType:          docType,
		Date:             time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Currency:         "EGP",
		FxRate:           decimal.NewFromInt(1),
		CounterpartyType: "customer",
		CounterpartyID:   "cp-9",
		Ref:              "INV-42",
	}
}

func TestBuildMapping_ARInvoice(t *testing.T) {
	doc := testDoc(domain.ARInvoice)
	docLines := []domain.DocumentLine{
		{LineNo: 1, Qty: dec("2"), UnitPrice: dec("150")},
		{LineNo: 2, Amount: dec("200")},
	}

	m, err := templates.BuildMapping(doc, docLines, testLookup)
	require.NoError(t, err)
	require.Len(t, m.Lines, 2)

	assert.Equal(t, "acc-ar", m.Lines[0].AccountID)
	assert.True(t, m.Lines[0].Debit.Equal(dec("500")))
	assert.Equal(t, "customer", m.Lines[0].EntityType)
	assert.Equal(t, "cp-9", m.Lines[0].EntityID)
	assert.Equal(t, "acc-sales", m.Lines[1].AccountID)
	assert.True(t, m.Lines[1].Credit.Equal(dec("500")))
}

func TestBuildMapping_ARPayment(t *testing.T) {
	doc := testDoc(domain.ARPayment)
	docLines := []domain.DocumentLine{{LineNo: 1, Amount: dec("300")}}

	m, err := templates.BuildMapping(doc, docLines, testLookup)
	require.NoError(t, err)
	require.Len(t, m.Lines, 2)

	assert.Equal(t, "acc-cash", m.Lines[0].AccountID)
	assert.True(t, m.Lines[0].Debit.Equal(dec("300")))
	assert.Equal(t, "acc-ar", m.Lines[1].AccountID)
	assert.True(t, m.Lines[1].Credit.Equal(dec("300")))
}

func TestBuildMapping_APInvoicePerLineDebits(t *testing.T) {
	doc := testDoc(domain.APInvoice)
	docLines := []domain.DocumentLine{
		{LineNo: 1, Amount: dec("120"), AccountID: "acc-utilities", Description: "power"},
		{LineNo: 2, Amount: dec("80"), AccountID: "acc-rent", Description: "office"},
	}

	m, err := templates.BuildMapping(doc, docLines, testLookup)
	require.NoError(t, err)
	require.Len(t, m.Lines, 3, "one debit per document line plus the AP credit")

	assert.Equal(t, "acc-utilities", m.Lines[0].AccountID)
	assert.True(t, m.Lines[0].Debit.Equal(dec("120")))
	assert.Equal(t, "acc-rent", m.Lines[1].AccountID)
	assert.True(t, m.Lines[1].Debit.Equal(dec("80")))
	assert.Equal(t, "acc-ap", m.Lines[2].AccountID)
	assert.True(t, m.Lines[2].Credit.Equal(dec("200")))
	assert.Equal(t, "supplier", m.Lines[2].EntityType)
}

func TestBuildMapping_APInvoiceZeroLinesFallsBackToExpense(t *testing.T) {
	doc := testDoc(domain.APInvoice)

	m, err := templates.BuildMapping(doc, nil, testLookup)
	require.NoError(t, err)
	require.Len(t, m.Lines, 2)

	assert.Equal(t, "acc-expense", m.Lines[0].AccountID)
	assert.True(t, m.Lines[0].Debit.IsZero())
	assert.Equal(t, "acc-ap", m.Lines[1].AccountID)
	assert.True(t, m.Lines[1].Credit.IsZero())
}

func TestBuildMapping_GeneralPassesSignedLinesThrough(t *testing.T) {
	doc := testDoc(domain.GeneralDoc)
	docLines := []domain.DocumentLine{
		{LineNo: 1, AccountID: "acc-a", Debit: dec("75"), Description: "accrual"},
		{LineNo: 2, AccountID: "acc-b", Credit: dec("75")},
	}

	m, err := templates.BuildMapping(doc, docLines, testLookup)
	require.NoError(t, err)
	require.Len(t, m.Lines, 2)

	assert.Equal(t, "acc-a", m.Lines[0].AccountID)
	assert.True(t, m.Lines[0].Debit.Equal(dec("75")))
	assert.Equal(t, "accrual", m.Lines[0].Memo)
	assert.True(t, m.Lines[1].Credit.Equal(dec("75")))
}

func TestBuildMapping_UnknownTypeFails(t *testing.T) {
	doc := testDoc(domain.DocType("purchase_order"))

	_, err := templates.BuildMapping(doc, nil, testLookup)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedDocType)
}

// Every template must produce debit=credit in native currency, which the
// builder then carries into balanced base amounts.
func TestBuildFromDocType_AllTemplatesBalance(t *testing.T) {
	docLines := []domain.DocumentLine{
		{LineNo: 1, Qty: dec("3"), UnitPrice: dec("99.99"), AccountID: "acc-x"},
		{LineNo: 2, Amount: dec("0.01"), AccountID: "acc-y"},
	}
	for _, docType := range []domain.DocType{
		domain.ARInvoice, domain.ARPayment, domain.APInvoice, domain.APPayment,
	} {
		doc := testDoc(docType)
		doc.FxRate = dec("47.25")

		_, lines, err := templates.BuildFromDocType(doc, docLines, testLookup)
		require.NoError(t, err, "docType %s", docType)
		assert.True(t, ledger.Balanced(lines), "docType %s must balance", docType)
	}
}

func TestBuildJournalFromDocument_MaterializesEntry(t *testing.T) {
	doc := testDoc(domain.ARInvoice)
	doc.FxRate = dec("48")
	docLines := []domain.DocumentLine{{LineNo: 1, Amount: dec("100")}}

	entry, lines, err := templates.BuildFromDocType(doc, docLines, testLookup)
	require.NoError(t, err)

	assert.Equal(t, domain.Posted, entry.Status)
	assert.Equal(t, domain.Period("2025-03"), entry.Period)
	assert.Equal(t, "document", entry.Source.Type)
	assert.Equal(t, "doc-1", entry.Source.ID)
	assert.Equal(t, "INV-42", entry.Ref)

	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].LineNo)
	assert.Equal(t, 2, lines[1].LineNo)
	assert.True(t, lines[0].BaseDebit.Equal(dec("4800")))
	assert.True(t, lines[1].BaseCredit.Equal(dec("4800")))
	assert.Equal(t, "doc-1", lines[0].DocID)
	// Entity fallback to the document counterparty.
	assert.Equal(t, "customer", lines[1].EntityType)
	assert.Equal(t, "cp-9", lines[1].EntityID)
}

func TestBuildJournalFromDocument_ZeroFxRateDefaultsToOne(t *testing.T) {
	doc := testDoc(domain.ARPayment)
	doc.FxRate = decimal.Zero
	docLines := []domain.DocumentLine{{LineNo: 1, Amount: dec("60")}}

	entry, lines, err := templates.BuildFromDocType(doc, docLines, testLookup)
	require.NoError(t, err)

	assert.True(t, entry.FxRate.Equal(dec("1")))
	assert.True(t, lines[0].BaseDebit.Equal(dec("60")))
}

func TestDocumentLineAmount_QtyDefaultsToOne(t *testing.T) {
	l := domain.DocumentLine{UnitPrice: dec("12.5")}
	assert.True(t, l.LineAmount().Equal(dec("12.5")))

	l = domain.DocumentLine{Qty: dec("4"), UnitPrice: dec("12.5")}
	assert.True(t, l.LineAmount().Equal(dec("50")))

	l = domain.DocumentLine{Amount: dec("99"), Qty: dec("4"), UnitPrice: dec("12.5")}
	assert.True(t, l.LineAmount().Equal(dec("99")), "explicit amount wins")
}
