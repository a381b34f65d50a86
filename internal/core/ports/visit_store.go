package ports

import (
	"context"

	"github.com/kko-site/backoffice/internal/core/domain"
)

// VisitStore persists recorded page visits.
type VisitStore interface {
	Insert(ctx context.Context, visit *domain.Visit) (*domain.Visit, error)
	List(ctx context.Context, skip, limit int) ([]domain.Visit, error)
	TopPages(ctx context.Context, limit int) ([]domain.PageCount, error)
}
