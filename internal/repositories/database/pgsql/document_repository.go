package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	portsrepo "github.com/openbooks/openbooks/internal/core/ports/repositories"
)

// PgxDocumentRepository persists business documents and their lines.
type PgxDocumentRepository struct {
	BaseRepository
}

// NewDocumentRepository creates a repository for document data.
func NewDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

const documentColumns = `doc_id, doc_type, date, period, currency, fx_rate,
	counterparty_type, counterparty_id, ref, memo, status,
	created_at, created_by, last_updated_at, last_updated_by`

const documentLineColumns = `line_no, description, qty, unit_price, amount,
	debit, credit, account_id, tax_code`

// SaveDocument persists a document header and its lines in one transaction.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document, lines []domain.DocumentLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	docQuery := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, docQuery,
		doc.DocID,
		doc.DocType,
		doc.Date,
		doc.Period,
		doc.Currency,
		doc.FxRate,
		doc.CounterpartyType,
		doc.CounterpartyID,
		doc.Ref,
		doc.Memo,
		doc.Status,
		doc.CreatedAt,
		doc.CreatedBy,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document %s: %w", doc.DocID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO document_lines (doc_id, ` + documentLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, l := range lines {
		batch.Queue(lineQuery,
			doc.DocID,
			l.LineNo,
			l.Description,
			l.Qty,
			l.UnitPrice,
			l.Amount,
			l.Debit,
			l.Credit,
			l.AccountID,
			l.TaxCode,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines for document %s: %w", doc.DocID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit document %s: %w", doc.DocID, err)
	}
	return nil
}

// FindDocumentByID fetches one document header.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, docID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE doc_id = $1;`
	var d domain.Document
	err := r.Pool.QueryRow(ctx, query, docID).Scan(
		&d.DocID,
		&d.DocType,
		&d.Date,
		&d.Period,
		&d.Currency,
		&d.FxRate,
		&d.CounterpartyType,
		&d.CounterpartyID,
		&d.Ref,
		&d.Memo,
		&d.Status,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	return &d, nil
}

// FindDocumentLines fetches a document's lines ordered by line number.
func (r *PgxDocumentRepository) FindDocumentLines(ctx context.Context, docID string) ([]domain.DocumentLine, error) {
	query := `SELECT ` + documentLineColumns + ` FROM document_lines WHERE doc_id = $1 ORDER BY line_no;`
	rows, err := r.Pool.Query(ctx, query, docID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for document %s: %w", docID, err)
	}
	defer rows.Close()

	var lines []domain.DocumentLine
	for rows.Next() {
		var l domain.DocumentLine
		err := rows.Scan(
			&l.LineNo,
			&l.Description,
			&l.Qty,
			&l.UnitPrice,
			&l.Amount,
			&l.Debit,
			&l.Credit,
			&l.AccountID,
			&l.TaxCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading document line rows: %w", err)
	}
	return lines, nil
}
