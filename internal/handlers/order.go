package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ekoval/storefront/internal/logging"
	"github.com/ekoval/storefront/internal/mykafka"
	ordersvc "github.com/ekoval/storefront/internal/service/order"
	"github.com/ekoval/storefront/internal/service/token"
	"github.com/ekoval/storefront/internal/transport"
	"github.com/ekoval/storefront/internal/util"
)

type OrderHandler struct {
	Svc      *ordersvc.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Checkout(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ordersvc.ErrValidation):
			l.Warn("create_order_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ordersvc.ErrNotFound):
			l.Warn("create_order_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			l.Error("create_order_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	publish(c, h.Producer, "order_events", itoa(userID), map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"number":  order.Number,
		"total":   order.TotalPrice,
	})

	l.Info("create_order_success", "orderID", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, err := h.Svc.ListOrders(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := h.Svc.GetOrder(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, ordersvc.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteOrder(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, ordersvc.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, "order_events", itoa(userID), map[string]any{
		"type":    "order_deleted",
		"userID":  userID,
		"orderID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) OrderSummary(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	summary, err := h.Svc.Summary(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, summary)
}
