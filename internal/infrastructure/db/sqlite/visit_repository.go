package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kko-site/backoffice/internal/core/domain"
)

// VisitRepository implements ports.VisitStore on SQLite.
type VisitRepository struct {
	db *sql.DB
}

func NewVisitRepository(db *sql.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Insert(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO visits (page_url, referrer, user_agent, remote_addr, visit_time)
		VALUES (?, ?, ?, ?, ?)`,
		visit.PageURL, visit.Referrer, visit.UserAgent, visit.RemoteAddr, visit.VisitedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert visit: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert visit: %w", err)
	}

	created := *visit
	created.ID = id
	return &created, nil
}

func (r *VisitRepository) List(ctx context.Context, skip, limit int) ([]domain.Visit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, page_url, referrer, user_agent, remote_addr, visit_time
		FROM visits ORDER BY visit_time DESC, id DESC LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []domain.Visit
	for rows.Next() {
		var v domain.Visit
		if err := rows.Scan(&v.ID, &v.PageURL, &v.Referrer, &v.UserAgent, &v.RemoteAddr, &v.VisitedAt); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *VisitRepository) TopPages(ctx context.Context, limit int) ([]domain.PageCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT page_url, COUNT(*) AS visits
		FROM visits GROUP BY page_url ORDER BY visits DESC, page_url LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.PageCount
	for rows.Next() {
		var p domain.PageCount
		if err := rows.Scan(&p.PageURL, &p.Visits); err != nil {
			return nil, fmt.Errorf("scan page count: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
