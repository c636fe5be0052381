package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/agriscience/journal-api/internal/apperr"
	"github.com/agriscience/journal-api/internal/domain"
	"github.com/agriscience/journal-api/internal/storage"
	"github.com/agriscience/journal-api/pkg/pagination"
)

// IssueRouter serves the public read side of issues: archives listing,
// the current issue and single-issue views. Backend failures on these
// paths degrade to empty collections rather than broken pages.
type IssueRouter struct {
	e     *echo.Echo
	store storage.IssueStore
}

func NewIssueRouter(e *echo.Echo, store storage.IssueStore) *IssueRouter {
	return &IssueRouter{
		e:     e,
		store: store,
	}
}

func (r *IssueRouter) Bind() {
	r.e.GET("/api/issues", r.listHandler)
	r.e.GET("/api/issues/current", r.currentHandler)
	r.e.GET("/api/issues/:id", r.getHandler)
}

func (r *IssueRouter) listHandler(c echo.Context) error {
	var req pagination.OffsetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	_ = req.Validate()

	issues, err := r.store.ListIssues(c.Request().Context())
	if err != nil {
		slog.Error("Failed to list issues, degrading to empty", "error", err)
		issues = nil
	}

	total := int64(len(issues))
	offset := (req.Page - 1) * req.Size
	if offset > len(issues) {
		offset = len(issues)
	}
	end := offset + req.Size
	if end > len(issues) {
		end = len(issues)
	}
	page := issues[offset:end]
	if page == nil {
		page = []domain.Issue{}
	}

	return c.JSON(http.StatusOK, pagination.NewOffsetResult(page, total, req.Page, req.Size))
}

func (r *IssueRouter) currentHandler(c echo.Context) error {
	issue, err := r.store.GetCurrentIssue(c.Request().Context())
	if err != nil {
		var nfe *apperr.NotFoundError
		if errors.As(err, &nfe) {
			return err
		}
		slog.Error("Failed to load current issue", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "no current issue")
	}
	return c.JSON(http.StatusOK, issue)
}

func (r *IssueRouter) getHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid issue id", err)
	}

	issue, err := r.store.GetIssue(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issue)
}
