package analyses

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new response record.
func (r *PGRepo) Create(ctx context.Context, record ResponseRecord) error {
	const query = `
INSERT INTO responses (id, user_id, user_name, document_id, document_name, user_message, ai_response, response_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		record.ResponseID,
		record.UserID,
		nullableString(record.UserName),
		nullableString(record.DocumentID),
		nullableString(record.DocumentName),
		record.UserMessage,
		record.AIResponse,
		record.Type,
		record.Timestamp,
	)
	return err
}

// ListByOwner returns the owner's newest records first, capped at listLimit.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]ResponseRecord, error) {
	const query = `
SELECT id, user_id, user_name, document_id, document_name, user_message, ai_response, response_type, created_at
FROM responses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, ownerID, listLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResponseRecord
	for rows.Next() {
		var record ResponseRecord
		var userName, documentID, documentName sql.NullString
		if err := rows.Scan(
			&record.ResponseID,
			&record.UserID,
			&userName,
			&documentID,
			&documentName,
			&record.UserMessage,
			&record.AIResponse,
			&record.Type,
			&record.Timestamp,
		); err != nil {
			return nil, err
		}
		if userName.Valid {
			record.UserName = userName.String
		}
		if documentID.Valid {
			record.DocumentID = documentID.String
		}
		if documentName.Valid {
			record.DocumentName = documentName.String
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// CountByOwner returns how many records the owner has.
func (r *PGRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM responses WHERE user_id = $1`, ownerID).Scan(&count)
	return count, err
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
