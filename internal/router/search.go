package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriscience/journal-api/internal/search"
)

type SearchRouter struct {
	e          *echo.Echo
	aggregator *search.Aggregator
}

func NewSearchRouter(e *echo.Echo, aggregator *search.Aggregator) *SearchRouter {
	return &SearchRouter{
		e:          e,
		aggregator: aggregator,
	}
}

func (r *SearchRouter) Bind() {
	r.e.GET("/api/search", r.searchHandler)
}

// searchHandler never fails: domain fetch errors degrade to fewer
// results inside the aggregator, and a too-short query is simply empty.
func (r *SearchRouter) searchHandler(c echo.Context) error {
	query := c.QueryParam("q")
	results := r.aggregator.Search(c.Request().Context(), query)
	return c.JSON(http.StatusOK, results)
}
