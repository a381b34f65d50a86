package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kko-site/backoffice/internal/core/domain"
)

func requireRoleContext(t *testing.T, principal *domain.Principal) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(principalKey, *principal)
	}
	return c
}

func TestRequireRole_Match(t *testing.T) {
	gate := &stubGate{}
	c := requireRoleContext(t, &domain.Principal{Username: "root", Role: domain.RoleAdmin})

	called := false
	err := RequireRole(gate, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireRole_Mismatch(t *testing.T) {
	gate := &stubGate{}
	c := requireRoleContext(t, &domain.Principal{Username: "alice", Role: domain.RoleManager})

	err := RequireRole(gate, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_NoHierarchy(t *testing.T) {
	gate := &stubGate{}
	c := requireRoleContext(t, &domain.Principal{Username: "root", Role: domain.RoleAdmin})

	err := RequireRole(gate, domain.RoleManager)(func(c echo.Context) error {
		t.Fatalf("admin must not satisfy a manager-only check")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_MissingPrincipal(t *testing.T) {
	gate := &stubGate{}
	c := requireRoleContext(t, nil)

	err := RequireRole(gate, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
