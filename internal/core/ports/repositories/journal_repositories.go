package repositories

import (
	"context"
	"time"

	"github.com/openbooks/openbooks/internal/core/domain"
)

// EntryRepository defines persistence operations for journal entries and
// their lines. Saving an entry persists header and lines atomically; the
// storage layer is the final gate and must reject unbalanced line sets.
type EntryRepository interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	// FindEntryByRefAndDate backs duplicate detection; returns
	// apperrors.ErrNotFound when no entry matches.
	FindEntryByRefAndDate(ctx context.Context, ref string, date time.Time) (*domain.JournalEntry, error)
	// ListLinesByDateRange returns all posted lines whose entry date falls
	// within [from, to], the input to trial-balance aggregation.
	ListLinesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalLine, error)
}
