package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"lexibridge-backend/internal/shared/ids"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	users   map[string]User
	history map[string][]ChatHistoryEntry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:   make(map[string]User),
		history: make(map[string][]ChatHistoryEntry),
	}
}

// Create inserts a new user after the combined uniqueness pre-check.
func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrEmailTaken
		}
		if strings.EqualFold(existing.Username, user.Username) {
			return ErrUsernameTaken
		}
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	r.users[user.ID] = user
	return nil
}

// GetByEmail returns the user with the given email.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

// GetByID returns the user with the given id.
func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[ids.Normalize(userID)]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// AppendChatHistory appends an entry, trimming to the most recent entries.
func (r *MemoryRepo) AppendChatHistory(ctx context.Context, userID string, entry ChatHistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ids.Normalize(userID)
	if _, ok := r.users[key]; !ok {
		return ErrNotFound
	}
	entries := append(r.history[key], entry)
	if len(entries) > maxChatHistory {
		entries = entries[len(entries)-maxChatHistory:]
	}
	r.history[key] = entries
	return nil
}

// ListChatHistory returns the user's history, most-recent-last.
func (r *MemoryRepo) ListChatHistory(ctx context.Context, userID string) ([]ChatHistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.history[ids.Normalize(userID)]
	out := make([]ChatHistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}
