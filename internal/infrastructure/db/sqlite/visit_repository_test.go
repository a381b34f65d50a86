package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/kko-site/backoffice/internal/core/domain"
)

func testVisit(page string, at time.Time) *domain.Visit {
	return &domain.Visit{
		PageURL:    page,
		Referrer:   "https://search.example",
		UserAgent:  "test-agent",
		RemoteAddr: "203.0.113.9",
		VisitedAt:  at,
	}
}

func TestVisitRepository_InsertAndList(t *testing.T) {
	repo := NewVisitRepository(testDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, page := range []string{"/", "/pricing", "/about"} {
		if _, err := repo.Insert(ctx, testVisit(page, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Insert %s: %v", page, err)
		}
	}

	visits, err := repo.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(visits) != 3 {
		t.Fatalf("expected 3 visits, got %d", len(visits))
	}
	// Newest first.
	if visits[0].PageURL != "/about" || visits[2].PageURL != "/" {
		t.Fatalf("unexpected order: %s … %s", visits[0].PageURL, visits[2].PageURL)
	}
	if visits[0].Referrer != "https://search.example" || visits[0].UserAgent != "test-agent" {
		t.Fatalf("visit fields not round-tripped: %+v", visits[0])
	}
}

func TestVisitRepository_ListPagination(t *testing.T) {
	repo := NewVisitRepository(testDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if _, err := repo.Insert(ctx, testVisit("/", base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	page, err := repo.List(ctx, 2, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(page))
	}
}

func TestVisitRepository_TopPages(t *testing.T) {
	repo := NewVisitRepository(testDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pages := []string{"/", "/", "/", "/pricing", "/pricing", "/about"}
	for i, page := range pages {
		if _, err := repo.Insert(ctx, testVisit(page, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	top, err := repo.TopPages(ctx, 2)
	if err != nil {
		t.Fatalf("TopPages returned error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].PageURL != "/" || top[0].Visits != 3 {
		t.Fatalf("unexpected top page: %+v", top[0])
	}
	if top[1].PageURL != "/pricing" || top[1].Visits != 2 {
		t.Fatalf("unexpected second page: %+v", top[1])
	}
}
