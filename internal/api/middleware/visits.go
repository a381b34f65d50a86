package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/kko-site/backoffice/internal/core/domain"
	"github.com/kko-site/backoffice/internal/core/ports"
)

// VisitEnqueuer hands a qualifying visit off for asynchronous recording.
type VisitEnqueuer interface {
	Enqueue(visit ports.VisitInput)
}

// VisitLogger observes completed responses and enqueues page visits per the
// recording policy. Recording never delays or fails the request.
func VisitLogger(queue VisitEnqueuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				// The error handler has not rendered yet, so the response
				// status is not trustworthy here. Errors are never page views.
				return err
			}

			req := c.Request()
			if domain.ShouldRecordVisit(req.Method, req.URL.Path, c.Response().Status) {
				queue.Enqueue(ports.VisitInput{
					PageURL:    req.URL.Path,
					Referrer:   req.Referer(),
					UserAgent:  req.UserAgent(),
					RemoteAddr: c.RealIP(),
				})
			}
			return nil
		}
	}
}
