package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ekoval/storefront/internal/models"
	"github.com/ekoval/storefront/internal/repo"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

type CartService struct {
	Repo *repo.GormRepo
}

// GetCart returns the caller's cart with items and product details, or
// ErrNotFound when no cart has been created yet.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart", ErrNotFound)
		}
		return nil, err
	}
	return cart, nil
}

// AddToCart resolves the product by name, lazily creates the caller's cart
// and merges the quantity into the matching line item. The full cart is
// returned.
func (s *CartService) AddToCart(ctx context.Context, userID uint, productName string, quantity int) (*models.Cart, error) {
	if productName == "" {
		return nil, fmt.Errorf("%w: product_name required", ErrValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	}

	product, err := s.Repo.GetProductByName(ctx, productName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %q", ErrNotFound, productName)
		}
		return nil, err
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpsertItem(ctx, cart.ID, product.ID, uint(quantity)); err != nil {
		return nil, err
	}

	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) RemoveOne(ctx context.Context, userID, itemID uint) (bool, *models.CartItem, error) {
	deleted, item, err := s.Repo.DecrementItem(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, fmt.Errorf("%w: cart item", ErrNotFound)
		}
		return false, nil, err
	}
	return deleted, item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	if err := s.Repo.DeleteItem(ctx, itemID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item", ErrNotFound)
		}
		return err
	}
	return nil
}
