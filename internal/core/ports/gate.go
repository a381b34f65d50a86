package ports

import (
	"context"

	"github.com/kko-site/backoffice/internal/core/domain"
)

// AuthorizationGate resolves principals from bearer tokens and enforces role
// requirements on protected operations.
type AuthorizationGate interface {
	// Resolve derives a principal from a token. Verification failures and
	// unknown or inactive subjects surface as domain.ErrUnauthenticated;
	// store faults propagate unchanged.
	Resolve(ctx context.Context, token string) (domain.Principal, error)
	// RequireRole checks the principal's role against the single role the
	// calling operation demands. Mismatch is domain.ErrForbidden.
	RequireRole(principal domain.Principal, required domain.Role) error
}
