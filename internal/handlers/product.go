package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ekoval/storefront/internal/mykafka"
	catalogsvc "github.com/ekoval/storefront/internal/service/catalog"
	"github.com/ekoval/storefront/internal/transport"
	"github.com/ekoval/storefront/internal/util"
)

type ProductHandler struct {
	Svc      *catalogsvc.CatalogService
	Producer *mykafka.Producer
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

// GetProductsByCategory filters by exact category name. A missing parameter
// is a caller error; an unknown category is an empty list.
func (h *ProductHandler) GetProductsByCategory(c echo.Context) error {
	category := c.QueryParam("category")
	if category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Category parameter is required.")
	}

	items, err := h.Svc.GetProductsByCategory(c.Request().Context(), category)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, "product_events", product.Name, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.PatchProduct(c.Request().Context(), req, id)
	if err != nil {
		switch {
		case errors.Is(err, catalogsvc.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, catalogsvc.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Product not found.")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	publish(c, h.Producer, "product_events", product.Name, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, catalogsvc.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, "product_events", itoa(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
