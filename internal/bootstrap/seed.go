package bootstrap

import (
	"context"
	"errors"
	"time"

	"lexibridge-backend/internal/shared/auth"
	"lexibridge-backend/internal/shared/ids"
	"lexibridge-backend/internal/shared/telemetry"
	"lexibridge-backend/internal/users"
)

var errDatabaseRequired = errors.New("DATABASE_URL is required")

const (
	seedEmail    = "test@example.com"
	seedPassword = "Testpass123"
)

// seedTestUser makes sure the well-known dev login exists. Failures are
// logged and ignored so a broken seed never blocks startup.
func seedTestUser(ctx context.Context, svc *users.Service) {
	if _, err := svc.Repo.GetByEmail(ctx, seedEmail); err == nil {
		return
	}

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		telemetry.BestEffort("seed.test-user", err, nil)
		return
	}

	now := time.Now().UTC()
	err = svc.Repo.Create(ctx, users.User{
		ID:           ids.New(),
		Username:     "testuser",
		Email:        seedEmail,
		PasswordHash: hash,
		FullName:     "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil && !errors.Is(err, users.ErrEmailTaken) {
		telemetry.BestEffort("seed.test-user", err, nil)
		return
	}
	telemetry.Info("seed.test-user ready", map[string]any{"email": seedEmail})
}
