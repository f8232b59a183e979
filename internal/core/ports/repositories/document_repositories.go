package repositories

import (
	"context"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// DocumentRepository defines persistence operations for business documents
// and their lines.
type DocumentRepository interface {
	SaveDocument(ctx context.Context, doc domain.Document, lines []domain.DocumentLine) error
	FindDocumentByID(ctx context.Context, docID string) (*domain.Document, error)
	FindDocumentLines(ctx context.Context, docID string) ([]domain.DocumentLine, error)
}
