package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ekoval/storefront/internal/models"
)

// ListCartsForUpdate locks the caller's cart rows for the duration of the
// surrounding transaction so concurrent checkouts serialize.
func (r *GormRepo) ListCartsForUpdate(ctx context.Context, userID uint) ([]models.Cart, error) {
	var carts []models.Cart
	if err := r.forUpdate(r.DB.WithContext(ctx).Model(&models.Cart{})).
		Where("user_id = ?", userID).Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

func (r *GormRepo) ListCartItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) DeleteCartItems(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items.Product").
		Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes the order and its items; the user filter keeps callers
// from deleting orders they do not own.
func (r *GormRepo) DeleteOrder(ctx context.Context, id, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error
	})
}

func (r *GormRepo) SummarizeOrders(ctx context.Context, userID uint) (int64, decimal.Decimal, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, decimal.Zero, err
	}

	var total decimal.Decimal
	row := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(total_price), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return 0, decimal.Zero, err
	}

	return count, total, nil
}
