package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kko-site/backoffice/internal/metrics"
	"github.com/kko-site/backoffice/internal/core/domain"
	"github.com/kko-site/backoffice/internal/core/ports"
)

// VisitService records page visits for the SEO stats dashboard. Recording is
// best-effort: a dedup outage degrades to counting every hit rather than
// failing the request.
type VisitService struct {
	store  ports.VisitStore
	dedup  ports.VisitDeduper
	clock  ports.Clock
	logger zerolog.Logger
}

// NewVisitService builds a VisitService. dedup may be nil, in which case every
// qualifying visit is recorded.
func NewVisitService(store ports.VisitStore, dedup ports.VisitDeduper, clock ports.Clock, logger zerolog.Logger) *VisitService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &VisitService{store: store, dedup: dedup, clock: clock, logger: logger}
}

func (s *VisitService) Record(ctx context.Context, input ports.VisitInput) error {
	timer := metrics.NewVisitRecordTimer()
	defer timer.ObserveDuration()

	if s.dedup != nil {
		seen, err := s.dedup.Seen(ctx, input.RemoteAddr, input.PageURL)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Msg("visit dedup unavailable, recording anyway")
		case seen:
			metrics.VisitsRecordedTotal.WithLabelValues("duplicate").Inc()
			return nil
		}
	}

	visit := &domain.Visit{
		PageURL:    input.PageURL,
		Referrer:   input.Referrer,
		UserAgent:  input.UserAgent,
		RemoteAddr: input.RemoteAddr,
		VisitedAt:  s.clock.Now(),
	}
	if _, err := s.store.Insert(ctx, visit); err != nil {
		metrics.VisitsRecordedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("insert visit: %w", err)
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, input.RemoteAddr, input.PageURL); err != nil {
			s.logger.Warn().Err(err).Msg("visit dedup mark failed")
		}
	}

	metrics.VisitsRecordedTotal.WithLabelValues("recorded").Inc()
	return nil
}

func (s *VisitService) List(ctx context.Context, skip, limit int) ([]domain.Visit, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.store.List(ctx, skip, limit)
}

func (s *VisitService) TopPages(ctx context.Context, limit int) ([]domain.PageCount, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = 20
	}
	return s.store.TopPages(ctx, limit)
}
