package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"          json:"id"`
	Token     string `gorm:"unique;not null"     json:"token"`
	UserID    uint   `gorm:"index;not null"      json:"user_id"`
	ExpiresAt int64  `gorm:"not null"            json:"expires_at"`
	Revoked   bool   `gorm:"default:false"       json:"revoked"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null"     json:"name"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name        string          `gorm:"uniqueIndex;not null"       json:"name"`
	Description string          `gorm:"not null"                   json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"price"`
	CategoryID  uint            `gorm:"index;not null"             json:"category_id"`
	Image       string          `json:"image"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Cart is the user's single mutable basket. The unique index on UserID keeps
// a second cart from ever being created; checkout still validates the count.
type Cart struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null"     json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"cart_items"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"              json:"id"`
	CartID    uint `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  uint `gorm:"not null;default:1;check:quantity>0"   json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"   json:"id"`
	Number          string          `gorm:"uniqueIndex;not null"       json:"number"`
	UserID          uint            `gorm:"index;not null"             json:"user_id"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"total_price"`
	PhoneNumber     string          `gorm:"not null"                   json:"phone_number"`
	DeliveryAddress string          `gorm:"not null"                   json:"delivery_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
}

// OrderItem.Price is the line total (unit price x quantity) captured at
// checkout. It is never recomputed from the product afterwards.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"   json:"id"`
	OrderID   uint            `gorm:"index;not null"             json:"order_id"`
	ProductID uint            `gorm:"not null"                   json:"product_id"`
	Quantity  uint            `gorm:"not null;check:quantity>0"  json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
