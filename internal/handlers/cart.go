package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ekoval/storefront/internal/logging"
	"github.com/ekoval/storefront/internal/models"
	"github.com/ekoval/storefront/internal/mykafka"
	cartsvc "github.com/ekoval/storefront/internal/service/cart"
	"github.com/ekoval/storefront/internal/service/token"
	"github.com/ekoval/storefront/internal/transport"
)

type CartHandler struct {
	Svc      *cartsvc.CartService
	Producer *mykafka.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, cartsvc.ErrNotFound) {
			return c.JSON(http.StatusOK, []models.Cart{})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, []models.Cart{*cart})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.ProductName == "" || req.Quantity == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Both product name and quantity are required.")
	}

	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.Svc.AddToCart(ctx, userID, req.ProductName, quantity)
	if err != nil {
		switch {
		case errors.Is(err, cartsvc.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, cartsvc.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found.")
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	publish(c, h.Producer, "cart_events", itoa(userID), map[string]any{
		"type":         "cart_item_added",
		"userID":       userID,
		"product_name": req.ProductName,
		"quantity":     quantity,
	})

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) DeleteOneFromCart(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	deleted, item, err := h.Svc.RemoveOne(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, cartsvc.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if deleted {
		publish(c, h.Producer, "cart_events", itoa(userID), map[string]any{
			"type":         "cart_item_deleted",
			"userID":       userID,
			"deleted_item": id,
		})
		return c.JSON(http.StatusOK, map[string]any{"deleted_item": id})
	}

	publish(c, h.Producer, "cart_events", itoa(userID), map[string]any{
		"type":         "cart_item_decremented",
		"userID":       userID,
		"id":           item.ID,
		"new_quantity": item.Quantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) DeleteAllFromCart(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.RemoveItem(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, cartsvc.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, "cart_events", itoa(userID), map[string]any{
		"type":         "cart_item_deleted",
		"userID":       userID,
		"deleted_item": id,
	})
	return c.NoContent(http.StatusNoContent)
}
