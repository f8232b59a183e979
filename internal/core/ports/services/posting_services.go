package services

import (
	"context"

	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/dto"
)

// PostingService accepts journal entries and documents for posting. Every
// write passes the period-closed and duplicate-reference guards and the
// balance gate before persistence; a failed check blocks the write entirely.
type PostingService interface {
	PostEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, []domain.JournalLine, error)
	PostDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, *domain.JournalEntry, error)
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.JournalLine, error)
	GetDocument(ctx context.Context, docID string) (*domain.Document, []domain.DocumentLine, error)
}
