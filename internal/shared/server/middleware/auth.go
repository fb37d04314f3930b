package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/shared/auth"
	"lexibridge-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	usernameKey  = "username"
	userEmailKey = "userEmail"
	fullNameKey  = "fullName"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID   string
	Username string
	Email    string
	FullName string
}

// IdentityResolver confirms the token subject still exists and returns the
// caller's current profile fields.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (Identity, error)
}

// Auth validates bearer session tokens, resolves the current user and
// stores the identity in the request context. A token whose subject no
// longer exists is treated as invalid.
func Auth(issuer *auth.Issuer, users IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, respond.CodeAuth, "missing or invalid token")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, respond.CodeAuth, "missing or invalid token")
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				respond.Error(c, http.StatusUnauthorized, respond.CodeAuth, "Token has expired")
				return
			}
			respond.Error(c, http.StatusUnauthorized, respond.CodeAuth, "Invalid token")
			return
		}

		ident, err := users.Resolve(c.Request.Context(), claims.UserID)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, respond.CodeAuth, "Invalid token")
			return
		}

		c.Set(userIDKey, ident.UserID)
		c.Set(usernameKey, ident.Username)
		c.Set(userEmailKey, ident.Email)
		c.Set(fullNameKey, ident.FullName)
		c.Next()
	}
}

// IdentityFromContext fetches the identity set by the auth middleware.
func IdentityFromContext(c *gin.Context) Identity {
	if c == nil {
		return Identity{}
	}
	return Identity{
		UserID:   c.GetString(userIDKey),
		Username: c.GetString(usernameKey),
		Email:    c.GetString(userEmailKey),
		FullName: c.GetString(fullNameKey),
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}
