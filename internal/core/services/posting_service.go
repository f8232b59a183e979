package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/core/ledger"
	portsrepo "github.com/openbooks/openbooks/internal/core/ports/repositories"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/core/templates"
	"github.com/openbooks/openbooks/internal/dto"
	"github.com/openbooks/openbooks/internal/middleware"
)

// DuplicateRefPolicy controls what happens when an entry reuses a reference
// already posted on the same date.
type DuplicateRefPolicy string

const (
	// DuplicateBlock rejects the posting. This is the default.
	DuplicateBlock DuplicateRefPolicy = "block"
	// DuplicateWarn logs the collision and posts anyway.
	DuplicateWarn DuplicateRefPolicy = "warn"
)

// postingService accepts journal entries and documents for posting. The
// period-closed and duplicate-reference checks read persisted state before
// the write decision and exist for friendly error reporting; the storage
// layer independently re-checks the balance gate and the period lock inside
// the write transaction.
type postingService struct {
	entryRepo  portsrepo.EntryRepository
	docRepo    portsrepo.DocumentRepository
	accountSvc portssvc.AccountService
	periodSvc  portssvc.PeriodService
	fxSvc      portssvc.FxService
	dupPolicy  DuplicateRefPolicy
}

// PostingServiceOption configures the posting service.
type PostingServiceOption func(*postingService)

// WithDuplicateRefPolicy overrides the default block policy.
func WithDuplicateRefPolicy(policy DuplicateRefPolicy) PostingServiceOption {
	return func(s *postingService) {
		s.dupPolicy = policy
	}
}

// NewPostingService creates a new PostingService.
func NewPostingService(
	entryRepo portsrepo.EntryRepository,
	docRepo portsrepo.DocumentRepository,
	accountSvc portssvc.AccountService,
	periodSvc portssvc.PeriodService,
	fxSvc portssvc.FxService,
	options ...PostingServiceOption,
) portssvc.PostingService {
	svc := &postingService{
		entryRepo:  entryRepo,
		docRepo:    docRepo,
		accountSvc: accountSvc,
		periodSvc:  periodSvc,
		fxSvc:      fxSvc,
		dupPolicy:  DuplicateBlock,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PostingService = (*postingService)(nil)

// resolvePeriod derives the period from the date when none was given and
// rejects the write when the period is closed.
func (s *postingService) resolvePeriod(ctx context.Context, date time.Time, explicit string) (domain.Period, error) {
	period := domain.PeriodFromDate(date)
	if explicit != "" {
		p, err := domain.ParsePeriod(explicit)
		if err != nil {
			return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		period = p
	}

	closed, err := s.periodSvc.IsClosed(ctx, period)
	if err != nil {
		return "", err
	}
	if closed {
		return "", fmt.Errorf("%w: %s", apperrors.ErrPeriodLocked, period)
	}
	return period, nil
}

// guardDuplicateRef applies the duplicate policy for a non-empty reference.
func (s *postingService) guardDuplicateRef(ctx context.Context, ref string, date time.Time) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	existing, err := s.entryRepo.FindEntryByRefAndDate(ctx, ref, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed duplicate lookup for ref %s: %w", ref, err)
	}

	if s.dupPolicy == DuplicateWarn {
		middleware.GetLoggerFromCtx(ctx).Warn("Duplicate reference posted under warn policy",
			slog.String("ref", ref),
			slog.String("date", date.Format("2006-01-02")),
			slog.String("existing_entry_id", existing.EntryID))
		return nil
	}
	return fmt.Errorf("%w: ref %s already posted on %s", apperrors.ErrDuplicate, ref, date.Format("2006-01-02"))
}

// entryFxRate resolves the conversion rate for an entry: an explicit
// positive rate wins, otherwise the stored rate for (date, currency).
func (s *postingService) entryFxRate(ctx context.Context, explicit decimal.Decimal, date time.Time, currency string) (decimal.Decimal, error) {
	if explicit.IsPositive() {
		return explicit, nil
	}
	return s.fxSvc.RateFor(ctx, date, currency)
}

// PostEntry validates and persists a manual journal entry.
func (s *postingService) PostEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}

	period, err := s.resolvePeriod(ctx, date, req.Period)
	if err != nil {
		return nil, nil, err
	}
	if err := s.guardDuplicateRef(ctx, req.Ref, date); err != nil {
		return nil, nil, err
	}

	fxRate, err := s.entryFxRate(ctx, req.FxRate, date, req.Currency)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:  uuid.NewString(),
		Date:     date,
		Period:   period,
		Currency: strings.ToUpper(req.Currency),
		FxRate:   fxRate,
		Memo:     req.Memo,
		Ref:      strings.TrimSpace(req.Ref),
		Status:   domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			LineNo:       i + 1,
			AccountID:    l.AccountID,
			Debit:        l.Debit,
			Credit:       l.Credit,
			BaseDebit:    ledger.ToBase(l.Debit, fxRate),
			BaseCredit:   ledger.ToBase(l.Credit, fxRate),
			DepartmentID: l.DepartmentID,
			EntityType:   l.EntityType,
			EntityID:     l.EntityID,
			Memo:         l.Memo,
		}
	}

	if !ledger.Balanced(lines) {
		t := ledger.EntryTotals(lines)
		return nil, nil, fmt.Errorf("%w: base debit %s vs base credit %s", apperrors.ErrUnbalanced, t.BaseDebit.String(), t.BaseCredit.String())
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("period", period.String()),
		slog.Int("line_count", len(lines)))
	return &entry, lines, nil
}

// PostDocument persists a business document and the single journal entry
// its mapping template generates. The template must produce balanced lines;
// unbalanced output blocks both writes.
func (s *postingService) PostDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, *domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	docType, err := domain.ParseDocType(req.DocType)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedDocType, req.DocType)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}

	period, err := s.resolvePeriod(ctx, date, req.Period)
	if err != nil {
		return nil, nil, err
	}
	if err := s.guardDuplicateRef(ctx, req.Ref, date); err != nil {
		return nil, nil, err
	}

	fxRate, err := s.entryFxRate(ctx, req.FxRate, date, req.Currency)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocID:            uuid.NewString(),
		DocType:          docType,
		Date:             date,
		Period:           period,
		Currency:         strings.ToUpper(req.Currency),
		FxRate:           fxRate,
		CounterpartyType: req.CounterpartyType,
		CounterpartyID:   req.CounterpartyID,
		Ref:              strings.TrimSpace(req.Ref),
		Memo:             req.Memo,
		Status:           "posted",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	docLines := make([]domain.DocumentLine, len(req.Lines))
	for i, l := range req.Lines {
		docLines[i] = domain.DocumentLine{
			LineNo:      i + 1,
			Description: l.Description,
			Qty:         l.Qty,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
			Debit:       l.Debit,
			Credit:      l.Credit,
			AccountID:   l.AccountID,
			TaxCode:     l.TaxCode,
		}
		docLines[i].Amount = docLines[i].LineAmount()
	}

	lookup := s.accountLookup(ctx)
	entry, lines, err := templates.BuildFromDocType(doc, docLines, lookup)
	if err != nil {
		return nil, nil, err
	}

	if !ledger.Balanced(lines) {
		t := ledger.EntryTotals(lines)
		return nil, nil, fmt.Errorf("%w: template output base debit %s vs base credit %s", apperrors.ErrUnbalanced, t.BaseDebit.String(), t.BaseCredit.String())
	}

	entry.EntryID = uuid.NewString()
	entry.AuditFields = doc.AuditFields
	for i := range lines {
		lines[i].DocID = doc.DocID
	}

	if err := s.docRepo.SaveDocument(ctx, doc, docLines); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()), slog.String("doc_id", doc.DocID))
		return nil, nil, fmt.Errorf("failed to save document: %w", err)
	}
	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save journal entry for document", slog.String("error", err.Error()), slog.String("doc_id", doc.DocID), slog.String("entry_id", entry.EntryID))
		return nil, nil, fmt.Errorf("failed to save journal entry for document %s: %w", doc.DocID, err)
	}

	logger.Info("Document posted",
		slog.String("doc_id", doc.DocID),
		slog.String("doc_type", string(docType)),
		slog.String("entry_id", entry.EntryID),
		slog.String("period", period.String()))
	return &doc, &entry, nil
}

// accountLookup adapts the account service into the code lookup the
// templates consume. Lookup misses yield ok=false; the template then emits
// a line with a blank account id.
func (s *postingService) accountLookup(ctx context.Context) templates.AccountLookup {
	return func(code string) (domain.Account, bool) {
		account, err := s.accountSvc.GetAccountByCode(ctx, code)
		if err != nil || account == nil {
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				middleware.GetLoggerFromCtx(ctx).Warn("Account lookup failed in template mapping",
					slog.String("code", code), slog.String("error", err.Error()))
			}
			return domain.Account{}, false
		}
		return *account, true
	}
}

// GetEntry fetches an entry header with its lines.
func (s *postingService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find lines for entry %s: %w", entryID, err)
	}
	return entry, lines, nil
}

// GetDocument fetches a document header with its lines.
func (s *postingService) GetDocument(ctx context.Context, docID string) (*domain.Document, []domain.DocumentLine, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, docID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find document %s: %w", docID, err)
	}
	lines, err := s.docRepo.FindDocumentLines(ctx, docID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find lines for document %s: %w", docID, err)
	}
	return doc, lines, nil
}
