package users

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrUsernameTaken      = errors.New("Username already taken")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrWeakPassword       = errors.New("Password must be at least 8 characters long")
	ErrShortUsername      = errors.New("Username must be at least 3 characters long")
)
