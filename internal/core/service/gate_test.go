package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kko-site/backoffice/internal/core/domain"
)

func newGateFixture(t *testing.T) (*Gate, *TokenService, *stubCredentialStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens := NewTokenService("test-secret", 30*time.Minute, clock)
	store := newStubCredentialStore()
	store.users["alice"] = &domain.User{
		ID: 1, Username: "alice", Email: "alice@example.com",
		PasswordHash: "irrelevant", Role: domain.RoleManager, Active: true,
	}
	return NewGate(tokens, store, zerolog.Nop()), tokens, store, clock
}

func TestGate_Resolve_Success(t *testing.T) {
	gate, tokens, _, _ := newGateFixture(t)

	token, err := tokens.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	principal, err := gate.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if principal.Username != "alice" || principal.Role != domain.RoleManager {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestGate_Resolve_ExpiredToken(t *testing.T) {
	gate, tokens, _, clock := newGateFixture(t)

	token, err := tokens.Issue("alice", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	clock.now = clock.now.Add(2 * time.Minute)

	if _, err := gate.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestGate_Resolve_TamperedToken(t *testing.T) {
	gate, tokens, _, _ := newGateFixture(t)

	token, err := tokens.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	tampered := token[:len(token)-2] + flipChar(token[len(token)-2:], 0)

	if _, err := gate.Resolve(context.Background(), tampered); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for tampered token, got %v", err)
	}
}

func TestGate_Resolve_UnknownSubject(t *testing.T) {
	gate, tokens, _, _ := newGateFixture(t)

	token, err := tokens.Issue("ghost", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := gate.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for unknown subject, got %v", err)
	}
}

type failingCredentialStore struct {
	*stubCredentialStore
	err error
}

func (s *failingCredentialStore) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, s.err
}

func TestGate_Resolve_StoreFailurePropagates(t *testing.T) {
	gate, tokens, store, _ := newGateFixture(t)
	storeErr := errors.New("disk I/O error")
	gate.store = &failingCredentialStore{stubCredentialStore: store, err: storeErr}

	token, err := tokens.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	_, err = gate.Resolve(context.Background(), token)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected the store error to propagate, got %v", err)
	}
	if errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("a store outage must not read as a rejected credential")
	}
}

func TestGate_Resolve_InactiveSubject(t *testing.T) {
	gate, tokens, store, _ := newGateFixture(t)
	store.users["alice"].Active = false

	token, err := tokens.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := gate.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for inactive subject, got %v", err)
	}
}

func TestGate_Resolve_DoesNotLeakVerifierDetail(t *testing.T) {
	gate, _, _, _ := newGateFixture(t)

	_, err := gate.Resolve(context.Background(), "not-a-token")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("verifier error must not be propagated as a matchable sentinel")
	}
	if strings.Contains(err.Error(), "not-a-token") {
		t.Fatalf("error text must not echo the token back")
	}
}

func TestGate_RequireRole(t *testing.T) {
	gate, _, _, _ := newGateFixture(t)

	admin := domain.Principal{Username: "root", Role: domain.RoleAdmin}
	manager := domain.Principal{Username: "alice", Role: domain.RoleManager}

	if err := gate.RequireRole(admin, domain.RoleAdmin); err != nil {
		t.Fatalf("admin must satisfy an admin check: %v", err)
	}
	if err := gate.RequireRole(manager, domain.RoleManager); err != nil {
		t.Fatalf("manager must satisfy a manager check: %v", err)
	}
	// No hierarchy in either direction.
	if err := gate.RequireRole(manager, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for manager on admin check, got %v", err)
	}
	if err := gate.RequireRole(admin, domain.RoleManager); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin on manager check, got %v", err)
	}
}
