package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupWindow = 30 * time.Minute

// VisitDeduper collapses repeated page loads from one client within
// dedupWindow into a single recorded visit.
// Key format: visit:<remote_addr>:<page_url>
type VisitDeduper struct {
	client *redis.Client
}

// NewVisitDeduper creates a VisitDeduper wrapping the given Redis client.
func NewVisitDeduper(client *redis.Client) *VisitDeduper {
	return &VisitDeduper{client: client}
}

// Seen reports whether this client+page pair was recorded within the window.
func (d *VisitDeduper) Seen(ctx context.Context, remoteAddr, pageURL string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(remoteAddr, pageURL)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this client+page pair was counted (expires after the
// dedup window).
func (d *VisitDeduper) Mark(ctx context.Context, remoteAddr, pageURL string) error {
	return d.client.Set(ctx, d.key(remoteAddr, pageURL), "1", dedupWindow).Err()
}

func (d *VisitDeduper) key(remoteAddr, pageURL string) string {
	return fmt.Sprintf("visit:%s:%s", remoteAddr, pageURL)
}
