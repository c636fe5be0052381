package router

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriscience/journal-api/internal/domain"
	"github.com/agriscience/journal-api/internal/storage"
)

// EditorialRouter serves the public editorial-board view: sections in
// display order, members resolved into them (including the legacy
// category fallback for rows without a section reference).
type EditorialRouter struct {
	e     *echo.Echo
	store storage.EditorialStore
}

func NewEditorialRouter(e *echo.Echo, store storage.EditorialStore) *EditorialRouter {
	return &EditorialRouter{
		e:     e,
		store: store,
	}
}

func (r *EditorialRouter) Bind() {
	r.e.GET("/api/editorial-board", r.boardHandler)
}

func (r *EditorialRouter) boardHandler(c echo.Context) error {
	ctx := c.Request().Context()

	sections, err := r.store.ListSections(ctx)
	if err != nil {
		slog.Error("Failed to list sections, degrading to empty", "error", err)
		sections = nil
	}
	members, err := r.store.ListMembers(ctx)
	if err != nil {
		slog.Error("Failed to list members, degrading to empty", "error", err)
		members = nil
	}

	board := domain.GroupMembersBySection(sections, members)
	return c.JSON(http.StatusOK, board)
}
