package ports

import (
	"context"

	"github.com/kko-site/backoffice/internal/core/domain"
)

// CreateUserInput carries the fields for an admin-gated user creation.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

type AuthService interface {
	// Authenticate verifies a username/password pair. Unknown usernames and
	// wrong passwords fail identically with domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// Login authenticates and issues a signed access token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error)
}
