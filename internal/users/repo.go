package users

import "context"

// Repo defines persistence operations for users and their chat history.
type Repo interface {
	// Create inserts a new user. Uniqueness of email and username is
	// checked as a single combined pre-check so the caller learns which
	// field collided (ErrEmailTaken or ErrUsernameTaken).
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	// AppendChatHistory appends an entry and trims the user's history to
	// the most recent maxChatHistory entries.
	AppendChatHistory(ctx context.Context, userID string, entry ChatHistoryEntry) error
	ListChatHistory(ctx context.Context, userID string) ([]ChatHistoryEntry, error)
}
