package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ekoval/storefront/internal/models"
	"github.com/ekoval/storefront/internal/mykafka"
	"github.com/ekoval/storefront/internal/repo"
	cartsvc "github.com/ekoval/storefront/internal/service/cart"
	catalogsvc "github.com/ekoval/storefront/internal/service/catalog"
	ordersvc "github.com/ekoval/storefront/internal/service/order"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Auth     *AuthHandler
	Cart     *CartHandler
	Order    *OrderHandler
	Product  *ProductHandler
	Category *CategoryHandler
}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)
	r := repo.New(db)
	producer := &mykafka.Producer{}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,

		Auth:     &AuthHandler{DB: db, JWTSecret: []byte("test-secret"), RefreshSecret: []byte("test-refresh"), Producer: producer},
		Cart:     &CartHandler{Svc: &cartsvc.CartService{Repo: r}, Producer: producer},
		Order:    &OrderHandler{Svc: &ordersvc.OrderService{Repo: r}, Producer: producer},
		Product:  &ProductHandler{Svc: &catalogsvc.CatalogService{Repo: r}, Producer: producer},
		Category: &CategoryHandler{Svc: &catalogsvc.CatalogService{Repo: r}, Producer: producer},
	}
}

// doJSONRequest builds a request context; userID 0 means unauthenticated.
func (env *testEnv) doJSONRequest(method, target string, body any, userID uint) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	if userID != 0 {
		c.Set("userID", userID)
		c.Set("role", "user")
	}
	return rec, c
}

func (env *testEnv) createCategory(name string) models.Category {
	category := models.Category{Name: name}
	require.NoError(env.T, env.DB.Create(&category).Error)
	return category
}

func (env *testEnv) createProduct(name, price string, categoryID uint) models.Product {
	product := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		CategoryID:  categoryID,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}
