package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kko-site/backoffice/internal/core/domain"
	"github.com/kko-site/backoffice/internal/core/ports"
)

// principalKey is the echo context key the resolved principal is stored under.
const principalKey = "principal"

// Authenticate resolves the bearer token into a principal and injects it into
// the request context. Rejected credentials come back as a 401 whose body
// never says why; anything else from the gate surfaces as a server error.
func Authenticate(gate ports.AuthorizationGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := gate.Resolve(c.Request().Context(), parts[1])
			if errors.Is(err, domain.ErrUnauthenticated) {
				return domain.ErrUnauthenticated
			}
			if err != nil {
				return err
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// CurrentPrincipal extracts the principal injected by Authenticate.
func CurrentPrincipal(c echo.Context) (domain.Principal, bool) {
	principal, ok := c.Get(principalKey).(domain.Principal)
	return principal, ok
}
