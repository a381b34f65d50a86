package domain

import "errors"

// Deterministic outcomes of the auth core. None of these are transient; they
// are never retried. The HTTP layer maps them to status codes in one place.
var (
	// ErrInvalidCredentials covers both "unknown username" and "wrong
	// password" so the two cases are not distinguishable by callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")

	// ErrUnauthenticated is the collapsed token-failure outcome surfaced by
	// the authorization gate.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the principal is authenticated but lacks the role
	// required by the operation.
	ErrForbidden = errors.New("access forbidden")

	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidRole       = errors.New("invalid role")
)
