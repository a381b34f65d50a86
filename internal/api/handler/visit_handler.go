package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kko-site/backoffice/internal/core/domain"
	"github.com/kko-site/backoffice/internal/core/ports"
)

type VisitHandler struct {
	visitService ports.VisitService
}

func NewVisitHandler(visitService ports.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

// List returns recorded visits, newest first, for the SEO stats dashboard.
func (h *VisitHandler) List(c echo.Context) error {
	visits, err := h.visitService.List(c.Request().Context(), queryInt(c, "skip", 0), queryInt(c, "limit", 0))
	if err != nil {
		return err
	}
	if visits == nil {
		visits = []domain.Visit{}
	}
	return c.JSON(http.StatusOK, visits)
}

// TopPages returns per-page visit counts, most visited first.
func (h *VisitHandler) TopPages(c echo.Context) error {
	pages, err := h.visitService.TopPages(c.Request().Context(), queryInt(c, "limit", 0))
	if err != nil {
		return err
	}
	if pages == nil {
		pages = []domain.PageCount{}
	}
	return c.JSON(http.StatusOK, pages)
}
