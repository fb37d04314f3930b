package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lexibridge-backend/internal/shared/ids"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `
id, user_id, user_name, document_name, original_filename, content,
ai_summary, analysis_status, file_size, storage_key, created_at, updated_at, analyzed_at`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, user_id, user_name, document_name, original_filename, content,
                       ai_summary, analysis_status, file_size, storage_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		nullableString(doc.UserName),
		doc.DocumentName,
		nullableString(doc.OriginalFilename),
		doc.Content,
		doc.AISummary,
		doc.AnalysisStatus,
		doc.FileSize,
		nullableString(doc.StorageKey),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// GetByID returns an owned document by id.
func (r *PGRepo) GetByID(ctx context.Context, ownerID, documentID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return r.scanDocument(r.DB.QueryRowContext(ctx, query, ids.Normalize(documentID), ownerID))
}

// ListByOwner returns the owner's documents, newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocumentRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateAnalysis overwrites the summary and status of an owned document.
func (r *PGRepo) UpdateAnalysis(ctx context.Context, ownerID, documentID, summary, status string, analyzedAt time.Time) error {
	const query = `
UPDATE documents
SET ai_summary = $3, analysis_status = $4, analyzed_at = $5, updated_at = $5
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, ids.Normalize(documentID), ownerID, summary, status, analyzedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByOwner returns how many documents the owner has.
func (r *PGRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM documents WHERE user_id = $1`, ownerID).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanDocument(row *sql.Row) (Document, error) {
	doc, err := scanDocumentRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

func scanDocumentRow(row rowScanner) (Document, error) {
	var doc Document
	var userName, originalFilename, storageKey sql.NullString
	var analyzedAt sql.NullTime
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&userName,
		&doc.DocumentName,
		&originalFilename,
		&doc.Content,
		&doc.AISummary,
		&doc.AnalysisStatus,
		&doc.FileSize,
		&storageKey,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&analyzedAt,
	)
	if err != nil {
		return Document{}, err
	}
	if userName.Valid {
		doc.UserName = userName.String
	}
	if originalFilename.Valid {
		doc.OriginalFilename = originalFilename.String
	}
	if storageKey.Valid {
		doc.StorageKey = storageKey.String
	}
	if analyzedAt.Valid {
		at := analyzedAt.Time
		doc.AnalyzedAt = &at
	}
	return doc, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
