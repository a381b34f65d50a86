package ports

import "context"

// VisitDeduper collapses repeated visits from the same client to the same
// page within a time window.
type VisitDeduper interface {
	Seen(ctx context.Context, remoteAddr, pageURL string) (bool, error)
	Mark(ctx context.Context, remoteAddr, pageURL string) error
}
