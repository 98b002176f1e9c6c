package order

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ekoval/storefront/internal/models"
	"github.com/ekoval/storefront/internal/repo"
	"github.com/ekoval/storefront/internal/transport"
)

func newService(t *testing.T) (*OrderService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))
	return &OrderService{Repo: repo.New(db)}, db
}

func seedCart(t *testing.T, db *gorm.DB, userID uint, prices map[string]uint) models.Cart {
	category := models.Category{Name: "default"}
	require.NoError(t, db.Create(&category).Error)

	cart := models.Cart{UserID: userID}
	require.NoError(t, db.Create(&cart).Error)

	for price, quantity := range prices {
		product := models.Product{
			Name:        "item-" + price,
			Description: "d",
			Price:       decimal.RequireFromString(price),
			CategoryID:  category.ID,
		}
		require.NoError(t, db.Create(&product).Error)
		require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: quantity}).Error)
	}
	return cart
}

func TestCheckoutTotals(t *testing.T) {
	svc, db := newService(t)
	seedCart(t, db, 1, map[string]uint{"10.50": 2, "3.25": 1})

	order, err := svc.Checkout(context.Background(), 1, transport.CreateOrderRequest{
		PhoneNumber:     "+15550001122",
		DeliveryAddress: "12 Main st",
	})
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("24.25").Equal(order.TotalPrice), "total = %s", order.TotalPrice)
	require.Len(t, order.Items, 2)

	var remaining int64
	db.Model(&models.CartItem{}).Count(&remaining)
	require.Equal(t, int64(0), remaining)
}

func TestCheckoutRequiresSingleCart(t *testing.T) {
	svc, db := newService(t)

	_, err := svc.Checkout(context.Background(), 1, transport.CreateOrderRequest{
		PhoneNumber:     "+15550001122",
		DeliveryAddress: "12 Main st",
	})
	require.ErrorIs(t, err, ErrValidation)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	require.Equal(t, int64(0), orders)
}

func TestCheckoutRollsBackOnMissingProduct(t *testing.T) {
	svc, db := newService(t)
	cart := seedCart(t, db, 1, map[string]uint{"10.50": 1})

	// dangling reference: the product disappears before checkout
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: 9999, Quantity: 1}).Error)

	_, err := svc.Checkout(context.Background(), 1, transport.CreateOrderRequest{
		PhoneNumber:     "+15550001122",
		DeliveryAddress: "12 Main st",
	})
	require.ErrorIs(t, err, ErrNotFound)

	var orders, orderItems, cartItems int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&orderItems)
	db.Model(&models.CartItem{}).Count(&cartItems)
	require.Equal(t, int64(0), orders, "no partial order may survive")
	require.Equal(t, int64(0), orderItems)
	require.Equal(t, int64(2), cartItems, "cart must be untouched after rollback")
}

func TestSummary(t *testing.T) {
	svc, db := newService(t)
	require.NoError(t, db.Create(&models.Order{Number: "n-1", UserID: 1, TotalPrice: decimal.RequireFromString("5.50"), PhoneNumber: "p", DeliveryAddress: "a"}).Error)
	require.NoError(t, db.Create(&models.Order{Number: "n-2", UserID: 1, TotalPrice: decimal.RequireFromString("4.50"), PhoneNumber: "p", DeliveryAddress: "a"}).Error)

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), summary.OrderCount)
	require.True(t, decimal.RequireFromString("10").Equal(summary.TotalPrice))
}
