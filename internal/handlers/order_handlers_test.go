package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ekoval/storefront/internal/models"
	"github.com/ekoval/storefront/internal/transport"
)

func checkoutBody() map[string]string {
	return map[string]string{
		"phone_number":     "+15550001122",
		"delivery_address": "12 Main st",
	}
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory("books")
	productA := env.createProduct("dune", "10.50", category.ID)
	productB := env.createProduct("solaris", "3.25", category.ID)

	cart := models.Cart{UserID: 1}
	require.NoError(t, env.DB.Create(&cart).Error)
	require.NoError(t, env.DB.Create(&models.CartItem{CartID: cart.ID, ProductID: productA.ID, Quantity: 2}).Error)
	require.NoError(t, env.DB.Create(&models.CartItem{CartID: cart.ID, ProductID: productB.ID, Quantity: 1}).Error)

	rec, c := env.doJSONRequest(http.MethodPost, "/orders/create", checkoutBody(), 1)
	require.NoError(t, env.Order.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.NotEmpty(t, order.Number)
	require.Equal(t, uint(1), order.UserID)
	require.True(t, decimal.RequireFromString("24.25").Equal(order.TotalPrice), "total = %s", order.TotalPrice)
	require.Len(t, order.Items, 2)
	require.True(t, decimal.RequireFromString("21.00").Equal(order.Items[0].Price))
	require.True(t, decimal.RequireFromString("3.25").Equal(order.Items[1].Price))
	require.Equal(t, "+15550001122", order.PhoneNumber)
	require.Equal(t, "12 Main st", order.DeliveryAddress)

	var itemCount int64
	env.DB.Model(&models.CartItem{}).Count(&itemCount)
	require.Equal(t, int64(0), itemCount, "cart must be drained")

	var cartCount int64
	env.DB.Model(&models.Cart{}).Where("user_id = ?", 1).Count(&cartCount)
	require.Equal(t, int64(1), cartCount, "cart survives checkout")
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	cart := models.Cart{UserID: 1}
	require.NoError(t, env.DB.Create(&cart).Error)

	rec, c := env.doJSONRequest(http.MethodPost, "/orders/create", checkoutBody(), 1)
	require.NoError(t, env.Order.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.True(t, order.TotalPrice.IsZero())
	require.Len(t, order.Items, 0)
}

func TestCheckoutWithoutCart(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/orders/create", checkoutBody(), 1)
	err := env.Order.CreateOrder(c)
	requireHTTPError(t, err, http.StatusBadRequest)
	require.Contains(t, err.(interface{ Error() string }).Error(), "must have exactly one cart")

	var orders int64
	env.DB.Model(&models.Order{}).Count(&orders)
	require.Equal(t, int64(0), orders)
}

func TestCheckoutMissingMetadata(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.DB.Create(&models.Cart{UserID: 1}).Error)

	for _, load := range []map[string]string{
		{"delivery_address": "12 Main st"},
		{"phone_number": "+15550001122"},
	} {
		_, c := env.doJSONRequest(http.MethodPost, "/orders/create", load, 1)
		requireHTTPError(t, env.Order.CreateOrder(c), http.StatusBadRequest)
	}

	var orders int64
	env.DB.Model(&models.Order{}).Count(&orders)
	require.Equal(t, int64(0), orders)
}

func TestCheckoutSnapshotPricing(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory("books")
	product := env.createProduct("dune", "10.00", category.ID)

	cart := models.Cart{UserID: 1}
	require.NoError(t, env.DB.Create(&cart).Error)
	require.NoError(t, env.DB.Create(&models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 3}).Error)

	rec, c := env.doJSONRequest(http.MethodPost, "/orders/create", checkoutBody(), 1)
	require.NoError(t, env.Order.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// later price change must not rewrite history
	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	var item models.OrderItem
	require.NoError(t, env.DB.First(&item).Error)
	require.True(t, decimal.RequireFromString("30.00").Equal(item.Price), "price = %s", item.Price)
}

func TestGetOrders(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.DB.Create(&models.Order{Number: "n-1", UserID: 1, TotalPrice: decimal.RequireFromString("5.00"), PhoneNumber: "p", DeliveryAddress: "a"}).Error)
	require.NoError(t, env.DB.Create(&models.Order{Number: "n-2", UserID: 2, TotalPrice: decimal.RequireFromString("7.00"), PhoneNumber: "p", DeliveryAddress: "a"}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/orders", nil, 1)
	require.NoError(t, env.Order.GetOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	require.Equal(t, "n-1", orders[0].Number)
}

func TestGetOrderNotOwned(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.DB.Create(&models.Order{Number: "n-1", UserID: 2, TotalPrice: decimal.Zero, PhoneNumber: "p", DeliveryAddress: "a"}).Error)

	_, c := env.doJSONRequest(http.MethodGet, "/orders/1", nil, 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	requireHTTPError(t, env.Order.GetOrder(c), http.StatusNotFound)
}

func TestDeleteOrderOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	order := models.Order{Number: "n-1", UserID: 1, TotalPrice: decimal.Zero, PhoneNumber: "p", DeliveryAddress: "a"}
	require.NoError(t, env.DB.Create(&order).Error)
	require.NoError(t, env.DB.Create(&models.OrderItem{OrderID: order.ID, ProductID: 1, Quantity: 1, Price: decimal.Zero}).Error)

	_, c := env.doJSONRequest(http.MethodDelete, "/orders/1/delete_order", nil, 2)
	c.SetParamNames("id")
	c.SetParamValues("1")
	requireHTTPError(t, env.Order.DeleteOrder(c), http.StatusNotFound)

	rec, c := env.doJSONRequest(http.MethodDelete, "/orders/1/delete_order", nil, 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Order.DeleteOrder(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var orders, items int64
	env.DB.Model(&models.Order{}).Count(&orders)
	env.DB.Model(&models.OrderItem{}).Count(&items)
	require.Equal(t, int64(0), orders)
	require.Equal(t, int64(0), items)
}

func TestOrderSummaryEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/orders/order_summary", nil, 1)
	require.NoError(t, env.Order.OrderSummary(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.OrderSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(0), resp.OrderCount)
	require.True(t, resp.TotalPrice.IsZero())
}

func TestOrderSummary(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.DB.Create(&models.Order{Number: "n-1", UserID: 1, TotalPrice: decimal.RequireFromString("5.50"), PhoneNumber: "p", DeliveryAddress: "a"}).Error)
	require.NoError(t, env.DB.Create(&models.Order{Number: "n-2", UserID: 1, TotalPrice: decimal.RequireFromString("4.50"), PhoneNumber: "p", DeliveryAddress: "a"}).Error)
	require.NoError(t, env.DB.Create(&models.Order{Number: "n-3", UserID: 2, TotalPrice: decimal.RequireFromString("100.00"), PhoneNumber: "p", DeliveryAddress: "a"}).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/orders/order_summary", nil, 1)
	require.NoError(t, env.Order.OrderSummary(c))

	var resp transport.OrderSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(2), resp.OrderCount)
	require.True(t, decimal.RequireFromString("10").Equal(resp.TotalPrice), "total = %s", resp.TotalPrice)
}
