package ports

import (
	"context"

	"github.com/kko-site/backoffice/internal/core/domain"
)

// CredentialStore is the persistence boundary for user records.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user. Returns domain.ErrDuplicateEmail or
	// domain.ErrDuplicateUsername on uniqueness conflicts.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}
