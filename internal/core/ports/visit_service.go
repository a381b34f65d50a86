package ports

import (
	"context"

	"github.com/kko-site/backoffice/internal/core/domain"
)

// VisitInput is one page load as observed by the HTTP layer.
type VisitInput struct {
	PageURL    string
	Referrer   string
	UserAgent  string
	RemoteAddr string
}

type VisitService interface {
	// Record persists a visit, applying the dedup window. It assumes the
	// caller already applied the recording policy (domain.ShouldRecordVisit).
	Record(ctx context.Context, input VisitInput) error
	List(ctx context.Context, skip, limit int) ([]domain.Visit, error)
	TopPages(ctx context.Context, limit int) ([]domain.PageCount, error)
}
