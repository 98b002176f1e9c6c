package transport

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"category_id"`
	Image       string          `json:"image"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uint            `json:"category_id"`
	Image       *string          `json:"image"`
}

// AddToCartRequest carries quantity as a raw value: callers send either a
// JSON number or a numeric string, both of which must be accepted.
type AddToCartRequest struct {
	ProductName string `json:"product_name"`
	Quantity    any    `json:"quantity"`
}

type CreateOrderRequest struct {
	PhoneNumber     string `json:"phone_number"`
	DeliveryAddress string `json:"delivery_address"`
}

type OrderSummaryResponse struct {
	OrderCount int64           `json:"order_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
