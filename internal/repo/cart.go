package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ekoval/storefront/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Preload("Items.Product").
		Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateCart creates the user's cart lazily on first use.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpsertItem merges quantity into an existing line or creates a new one,
// keeping at most one line per (cart, product).
func (r *GormRepo) UpsertItem(ctx context.Context, cartID, productID, quantity uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
		return tx.Create(&item).Error
	})
}

func (r *GormRepo) getItemOwned(tx *gorm.DB, itemID, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.forUpdate(tx.Model(&models.CartItem{})).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DecrementItem removes quantity unit by unit; the line is deleted when the
// last unit goes.
func (r *GormRepo) DecrementItem(ctx context.Context, itemID, userID uint) (bool, *models.CartItem, error) {
	var item *models.CartItem
	deleted := false

	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = r.getItemOwned(tx, itemID, userID)
		if err != nil {
			return err
		}
		if item.Quantity > 1 {
			if err := tx.Model(item).Update("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
				return err
			}
			item.Quantity--
			return nil
		}
		if err := tx.Delete(item).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	}); err != nil {
		return false, nil, err
	}
	return deleted, item, nil
}

func (r *GormRepo) DeleteItem(ctx context.Context, itemID, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := r.getItemOwned(tx, itemID, userID)
		if err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
}
