package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/kko-site/backoffice/internal/core/domain"
	"github.com/kko-site/backoffice/internal/core/ports"
)

// RequireRole enforces the single role an operation demands. It must run
// after Authenticate; a request that somehow reaches it without a principal
// is unauthenticated, not forbidden.
func RequireRole(gate ports.AuthorizationGate, required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := CurrentPrincipal(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if err := gate.RequireRole(principal, required); err != nil {
				return err
			}
			return next(c)
		}
	}
}
