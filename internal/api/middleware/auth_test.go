package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kko-site/backoffice/internal/core/domain"
)

type stubGate struct {
	resolveFn func(ctx context.Context, token string) (domain.Principal, error)
}

func (g *stubGate) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	return g.resolveFn(ctx, token)
}

func (g *stubGate) RequireRole(principal domain.Principal, required domain.Role) error {
	if principal.Role != required {
		return domain.ErrForbidden
	}
	return nil
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e := echo.New()
	gate := &stubGate{
		resolveFn: func(_ context.Context, token string) (domain.Principal, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token: %q", token)
			}
			return domain.Principal{Username: "alice", Role: domain.RoleManager}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(gate)(func(c echo.Context) error {
		called = true
		principal, ok := CurrentPrincipal(c)
		if !ok {
			t.Fatalf("principal not set")
		}
		if principal.Username != "alice" || principal.Role != domain.RoleManager {
			t.Fatalf("unexpected principal: %+v", principal)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	e := echo.New()
	gate := &stubGate{resolveFn: func(_ context.Context, _ string) (domain.Principal, error) {
		t.Fatalf("gate must not be called without a header")
		return domain.Principal{}, nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(gate)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthenticate_WrongScheme(t *testing.T) {
	e := echo.New()
	gate := &stubGate{resolveFn: func(_ context.Context, _ string) (domain.Principal, error) {
		t.Fatalf("gate must not be called for a non-bearer header")
		return domain.Principal{}, nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic YWxpY2U6cHc=")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Authenticate(gate)(func(c echo.Context) error { return nil })(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthenticate_GateRejection(t *testing.T) {
	e := echo.New()
	gate := &stubGate{resolveFn: func(_ context.Context, _ string) (domain.Principal, error) {
		return domain.Principal{}, domain.ErrUnauthenticated
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Authenticate(gate)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthenticate_GateFailurePropagates(t *testing.T) {
	e := echo.New()
	gateErr := errors.New("disk I/O error")
	gate := &stubGate{resolveFn: func(_ context.Context, _ string) (domain.Principal, error) {
		return domain.Principal{}, gateErr
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Authenticate(gate)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if !errors.Is(err, gateErr) {
		t.Fatalf("expected the gate error to propagate, got %v", err)
	}
	if errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("a gate failure must not read as a rejected credential")
	}
}

func TestAuthenticate_BearerCaseInsensitive(t *testing.T) {
	e := echo.New()
	gate := &stubGate{resolveFn: func(_ context.Context, token string) (domain.Principal, error) {
		return domain.Principal{Username: "alice", Role: domain.RoleAdmin}, nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Authenticate(gate)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c); err != nil {
		t.Fatalf("lowercase bearer scheme must be accepted: %v", err)
	}
}
