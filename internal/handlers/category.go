package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ekoval/storefront/internal/mykafka"
	catalogsvc "github.com/ekoval/storefront/internal/service/catalog"
	"github.com/ekoval/storefront/internal/transport"
)

type CategoryHandler struct {
	Svc      *catalogsvc.CatalogService
	Producer *mykafka.Producer
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.Svc.ListCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, "product_events", category.Name, map[string]any{
		"type":       "category_created",
		"categoryID": category.ID,
		"name":       category.Name,
	})

	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.UpdateCategory(c.Request().Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, catalogsvc.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, catalogsvc.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Category not found.")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		if errors.Is(err, catalogsvc.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.NoContent(http.StatusNoContent)
}
