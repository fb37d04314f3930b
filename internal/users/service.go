package users

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"lexibridge-backend/internal/shared/auth"
	"lexibridge-backend/internal/shared/ids"
	"lexibridge-backend/internal/shared/server/middleware"
)

// Service contains account business logic: registration, login and
// identity resolution for the auth middleware.
type Service struct {
	Repo   Repo
	Issuer *auth.Issuer
}

// NewService constructs a Service.
func NewService(repo Repo, issuer *auth.Issuer) *Service {
	return &Service{Repo: repo, Issuer: issuer}
}

// Register validates input, creates the user and issues a session token.
func (s *Service) Register(ctx context.Context, username, email, password string) (User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if len(password) < 8 {
		return User{}, "", ErrWeakPassword
	}
	if len(username) < 3 {
		return User{}, "", ErrShortUsername
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, "", err
	}

	now := time.Now().UTC()
	user := User{
		ID:           ids.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     username,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := s.Issuer.Sign(user.ID, user.Username, user.Email)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a session token. A missing user
// and a wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return User{}, "", ErrInvalidCredentials
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.Issuer.Sign(user.ID, user.Username, user.Email)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Resolve implements middleware.IdentityResolver: a token subject that no
// longer exists is an authentication failure.
func (s *Service) Resolve(ctx context.Context, userID string) (middleware.Identity, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return middleware.Identity{}, err
	}
	return middleware.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}, nil
}

// GetByID returns the stored user record.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// RecordHistory appends a chat-history entry, truncating the AI response
// preview to 500 characters. Callers treat failures as best-effort.
func (s *Service) RecordHistory(ctx context.Context, userID string, entry ChatHistoryEntry) error {
	const previewLimit = 500
	if utf8.RuneCountInString(entry.AIResponse) > previewLimit {
		entry.AIResponse = string([]rune(entry.AIResponse)[:previewLimit]) + "..."
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	return s.Repo.AppendChatHistory(ctx, userID, entry)
}
