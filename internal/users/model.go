package users

import "time"

// User is a registered account. PasswordHash is a bcrypt hash; the
// plaintext password is never stored.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChatHistoryEntry is a denormalized, truncated copy of a response record
// kept per user for quick profile display. Entries are append-only,
// most-recent-last, and bounded to the most recent maxChatHistory.
type ChatHistoryEntry struct {
	ResponseID   string
	DocumentID   string
	DocumentName string
	UserMessage  string
	AIResponse   string
	Timestamp    time.Time
}

// maxChatHistory bounds the per-user history kept on the profile.
const maxChatHistory = 100
