package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ekoval/storefront/internal/handlers"
	"github.com/ekoval/storefront/internal/middleware/csrf"
	"github.com/ekoval/storefront/internal/service/token"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	CategoryHandler *handlers.CategoryHandler
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	OrderHandler    *handlers.OrderHandler
	SearchHandler   *handlers.SearchHandler
	TokenService    *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := d.TokenService.AutoRefreshMiddleware
	adminMW := d.TokenService.AutoRefreshMiddlewareAdmin

	e.POST("/register", d.AuthHandler.Register)
	login := e.Group("/login", csrf.Middleware(csrf.DefaultConfig()))
	login.GET("", d.AuthHandler.LoginForm)
	login.POST("", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.LogOut)

	e.GET("/search", d.SearchHandler.Search)

	e.GET("/categories", d.CategoryHandler.GetCategories)
	adminCategories := e.Group("/categories", adminMW)
	adminCategories.POST("", d.CategoryHandler.CreateCategory)
	adminCategories.PUT("/:id", d.CategoryHandler.UpdateCategory)
	adminCategories.DELETE("/:id", d.CategoryHandler.DeleteCategory)

	e.GET("/products", d.ProductHandler.GetProducts)
	e.GET("/products/by_category", d.ProductHandler.GetProductsByCategory)
	e.GET("/products/:id", d.ProductHandler.GetProduct)
	adminProducts := e.Group("/products", adminMW)
	adminProducts.POST("", d.ProductHandler.CreateProduct)
	adminProducts.PUT("/:id", d.ProductHandler.PatchProduct)
	adminProducts.DELETE("/:id", d.ProductHandler.DeleteProduct)

	cart := e.Group("/cart", authMW)
	cart.GET("", d.CartHandler.GetCart)
	cart.DELETE("/items/:id", d.CartHandler.DeleteOneFromCart)
	cart.DELETE("/items/:id/all", d.CartHandler.DeleteAllFromCart)
	e.POST("/add-to-cart", d.CartHandler.AddToCart, authMW)

	orders := e.Group("/orders", authMW)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/order_summary", d.OrderHandler.OrderSummary)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/create", d.OrderHandler.CreateOrder)
	orders.DELETE("/:id/delete_order", d.OrderHandler.DeleteOrder)
}
