package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kko-site/backoffice/internal/core/domain"
	"github.com/kko-site/backoffice/internal/core/ports"
)

// Gate implements ports.AuthorizationGate. Every protected request re-derives
// its principal from the presented token; there is no server-held session
// state, so expiry alone transitions a caller back to unauthenticated.
type Gate struct {
	verifier ports.TokenVerifier
	store    ports.CredentialStore
	logger   zerolog.Logger
}

func NewGate(verifier ports.TokenVerifier, store ports.CredentialStore, logger zerolog.Logger) *Gate {
	return &Gate{verifier: verifier, store: store, logger: logger}
}

// Resolve verifies the token and loads the subject's current user record.
// The role is read from the store on every call, not from the token, so a
// role change takes effect on the next request. Authentication failures
// collapse into domain.ErrUnauthenticated with the cause logged, never
// returned; store faults propagate as-is so they surface as server errors.
func (g *Gate) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	subject, err := g.verifier.Verify(token)
	if err != nil {
		g.logger.Debug().Err(err).Msg("token rejected")
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	user, err := g.store.GetByUsername(ctx, subject)
	if errors.Is(err, domain.ErrUserNotFound) {
		g.logger.Debug().Str("username", subject).Msg("token subject unknown")
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	if err != nil {
		g.logger.Error().Err(err).Str("username", subject).Msg("lookup token subject")
		return domain.Principal{}, fmt.Errorf("lookup user: %w", err)
	}
	if !user.Active {
		g.logger.Debug().Str("username", subject).Msg("token subject inactive")
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	return domain.Principal{Username: user.Username, Role: user.Role}, nil
}

// RequireRole demands an exact role match. There is no hierarchy: admin does
// not satisfy a manager-only check, nor the reverse.
func (g *Gate) RequireRole(principal domain.Principal, required domain.Role) error {
	if principal.Role != required {
		return domain.ErrForbidden
	}
	return nil
}
