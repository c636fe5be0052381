package router

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriscience/journal-api/internal/domain"
	"github.com/agriscience/journal-api/internal/storage"
)

type ProductRouter struct {
	e     *echo.Echo
	store storage.ProductStore
}

func NewProductRouter(e *echo.Echo, store storage.ProductStore) *ProductRouter {
	return &ProductRouter{
		e:     e,
		store: store,
	}
}

func (r *ProductRouter) Bind() {
	r.e.GET("/api/products", r.listHandler)
}

func (r *ProductRouter) listHandler(c echo.Context) error {
	products, err := r.store.ListProducts(c.Request().Context())
	if err != nil {
		slog.Error("Failed to list products, degrading to empty", "error", err)
		products = nil
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(http.StatusOK, products)
}
