package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	"github.com/openbooks/openbooks/internal/core/ledger"
	portsrepo "github.com/openbooks/openbooks/internal/core/ports/repositories"
)

// PgxEntryRepository persists journal entries and their lines.
type PgxEntryRepository struct {
	BaseRepository
}

// NewEntryRepository creates a repository for journal entry data.
func NewEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepository {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, date, period, currency, fx_rate, memo, ref, status,
	source_type, source_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_no, account_id, debit, credit, base_debit, base_credit,
	department_id, entity_type, entity_id, doc_id, memo`

// SaveEntry persists header and lines in one serializable transaction. The
// storage layer is the final gate: unbalanced line sets are rejected here
// even if a caller skipped the service-level check, and the period lock is
// re-checked inside the transaction so a close committing concurrently
// aborts the write instead of slipping past the service-level guard.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	if !ledger.Balanced(lines) {
		return fmt.Errorf("%w: refusing to persist entry %s", apperrors.ErrUnbalanced, entry.EntryID)
	}

	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var closed bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM period_closings WHERE period = $1);`,
		entry.Period,
	).Scan(&closed)
	if err != nil {
		return fmt.Errorf("failed to check closing for period %s: %w", entry.Period, err)
	}
	if closed {
		return fmt.Errorf("%w: %s", apperrors.ErrPeriodLocked, entry.Period)
	}

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.Date,
		entry.Period,
		entry.Currency,
		entry.FxRate,
		entry.Memo,
		entry.Ref,
		entry.Status,
		entry.Source.Type,
		entry.Source.ID,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (entry_id, ` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, l := range lines {
		batch.Queue(lineQuery,
			entry.EntryID,
			l.LineNo,
			l.AccountID,
			l.Debit,
			l.Credit,
			l.BaseDebit,
			l.BaseCredit,
			l.DepartmentID,
			l.EntityType,
			l.EntityID,
			l.DocID,
			l.Memo,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", entry.EntryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entry %s: %w", entry.EntryID, err)
	}
	return nil
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.Date,
		&e.Period,
		&e.Currency,
		&e.FxRate,
		&e.Memo,
		&e.Ref,
		&e.Status,
		&e.Source.Type,
		&e.Source.ID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan journal entry: %w", err)
	}
	return &e, nil
}

// FindEntryByID fetches one entry header.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	return scanEntry(r.Pool.QueryRow(ctx, query, entryID))
}

// FindEntryByRefAndDate backs duplicate detection.
func (r *PgxEntryRepository) FindEntryByRefAndDate(ctx context.Context, ref string, date time.Time) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ref = $1 AND date = $2 LIMIT 1;`
	return scanEntry(r.Pool.QueryRow(ctx, query, ref, date))
}

func scanLines(rows pgx.Rows) ([]domain.JournalLine, error) {
	defer rows.Close()
	var lines []domain.JournalLine
	for rows.Next() {
		var l domain.JournalLine
		err := rows.Scan(
			&l.LineNo,
			&l.AccountID,
			&l.Debit,
			&l.Credit,
			&l.BaseDebit,
			&l.BaseCredit,
			&l.DepartmentID,
			&l.EntityType,
			&l.EntityID,
			&l.DocID,
			&l.Memo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading journal line rows: %w", err)
	}
	return lines, nil
}

// FindLinesByEntryID fetches an entry's lines ordered by line number.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY line_no;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	return scanLines(rows)
}

// ListLinesByDateRange returns posted lines whose entry date falls within
// [from, to], ordered by entry date then line number so aggregation sees a
// stable first-seen account order.
func (r *PgxEntryRepository) ListLinesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_no, l.account_id, l.debit, l.credit, l.base_debit, l.base_credit,
			l.department_id, l.entity_type, l.entity_id, l.doc_id, l.memo
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.status = 'posted' AND e.date >= $1 AND e.date <= $2
		ORDER BY e.date, e.entry_id, l.line_no;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines between %s and %s: %w",
			from.Format("2006-01-02"), to.Format("2006-01-02"), err)
	}
	return scanLines(rows)
}
