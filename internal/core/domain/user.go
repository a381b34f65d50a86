package domain

import "time"

// Role is the closed set of roles a user can hold. A role gates which
// protected operations a principal may invoke; there is no hierarchy between
// roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager
}

// User models an account in the back office. PasswordHash is opaque and never
// serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity derived from a valid token for the
// duration of one request. It has no lifecycle of its own.
type Principal struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
