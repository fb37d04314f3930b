package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"lexibridge-backend/internal/shared/ids"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new user after the combined email/username pre-check.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const checkQuery = `
SELECT email, username
FROM users
WHERE lower(email) = lower($1) OR lower(username) = lower($2)
LIMIT 1`
	var existingEmail, existingUsername string
	err := r.DB.QueryRowContext(ctx, checkQuery, user.Email, user.Username).
		Scan(&existingEmail, &existingUsername)
	switch {
	case err == nil:
		if strings.EqualFold(existingEmail, user.Email) {
			return ErrEmailTaken
		}
		return ErrUsernameTaken
	case errors.Is(err, sql.ErrNoRows):
		// free to insert
	default:
		return err
	}

	const insertQuery = `
INSERT INTO users (id, username, email, password_hash, full_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.DB.ExecContext(ctx, insertQuery,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		nullableString(user.FullName),
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// GetByEmail returns the user with the given email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, username, email, password_hash, full_name, created_at, updated_at
FROM users
WHERE lower(email) = lower($1)
LIMIT 1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

// GetByID returns the user with the given id.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, username, email, password_hash, full_name, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, ids.Normalize(userID)))
}

// AppendChatHistory appends an entry and trims the user's history.
func (r *PGRepo) AppendChatHistory(ctx context.Context, userID string, entry ChatHistoryEntry) error {
	key := ids.Normalize(userID)

	var exists int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = $1`, key).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	const insertQuery = `
INSERT INTO chat_history (user_id, response_id, document_id, document_name, user_message, ai_response_preview, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.DB.ExecContext(ctx, insertQuery,
		key,
		entry.ResponseID,
		nullableString(entry.DocumentID),
		nullableString(entry.DocumentName),
		entry.UserMessage,
		entry.AIResponse,
		entry.Timestamp,
	); err != nil {
		return err
	}

	const trimQuery = `
DELETE FROM chat_history
WHERE user_id = $1 AND seq NOT IN (
    SELECT seq FROM chat_history WHERE user_id = $1 ORDER BY seq DESC LIMIT $2
)`
	_, err = r.DB.ExecContext(ctx, trimQuery, key, maxChatHistory)
	return err
}

// ListChatHistory returns the user's history, most-recent-last.
func (r *PGRepo) ListChatHistory(ctx context.Context, userID string) ([]ChatHistoryEntry, error) {
	const query = `
SELECT response_id, document_id, document_name, user_message, ai_response_preview, created_at
FROM chat_history
WHERE user_id = $1
ORDER BY seq ASC`
	rows, err := r.DB.QueryContext(ctx, query, ids.Normalize(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChatHistoryEntry
	for rows.Next() {
		var entry ChatHistoryEntry
		var documentID, documentName sql.NullString
		if err := rows.Scan(
			&entry.ResponseID,
			&documentID,
			&documentName,
			&entry.UserMessage,
			&entry.AIResponse,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		if documentID.Valid {
			entry.DocumentID = documentID.String
		}
		if documentName.Valid {
			entry.DocumentName = documentName.String
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanUser(row *sql.Row) (User, error) {
	var user User
	var fullName sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&fullName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if fullName.Valid {
		user.FullName = fullName.String
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
