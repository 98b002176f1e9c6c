package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ekoval/storefront/internal/models"
	"github.com/ekoval/storefront/internal/repo"
	"github.com/ekoval/storefront/internal/transport"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

type OrderService struct {
	Repo *repo.GormRepo
}

// Checkout drains the caller's single cart into a new order. The whole
// workflow runs in one transaction with the cart row locked: pricing every
// line at the product's current price, creating the order and its items,
// then emptying the cart. Any failure rolls the whole thing back.
func (s *OrderService) Checkout(ctx context.Context, userID uint, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: phone_number required", ErrValidation)
	}
	if req.DeliveryAddress == "" {
		return nil, fmt.Errorf("%w: delivery_address required", ErrValidation)
	}

	var order *models.Order

	txErr := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		carts, err := tx.ListCartsForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if len(carts) != 1 {
			return fmt.Errorf("%w: must have exactly one cart", ErrValidation)
		}
		cart := carts[0]

		items, err := tx.ListCartItems(ctx, cart.ID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		lines := make([]decimal.Decimal, len(items))
		for i, it := range items {
			product, err := tx.GetProduct(ctx, it.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, it.ProductID)
				}
				return err
			}
			lines[i] = product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			total = total.Add(lines[i])
		}

		order = &models.Order{
			Number:          uuid.NewString(),
			UserID:          userID,
			TotalPrice:      total,
			PhoneNumber:     req.PhoneNumber,
			DeliveryAddress: req.DeliveryAddress,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		for i, it := range items {
			oi := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     lines[i],
			}
			if err := tx.CreateOrderItem(ctx, &oi); err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}

		return tx.DeleteCartItems(ctx, cart.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint, limit, offset int) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, limit, offset)
}

func (s *OrderService) GetOrder(ctx context.Context, id, userID uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

// DeleteOrder hard-deletes the order and its items. Only the owning user may
// delete; anything else reads as not found.
func (s *OrderService) DeleteOrder(ctx context.Context, id, userID uint) error {
	if err := s.Repo.DeleteOrder(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *OrderService) Summary(ctx context.Context, userID uint) (transport.OrderSummaryResponse, error) {
	count, total, err := s.Repo.SummarizeOrders(ctx, userID)
	if err != nil {
		return transport.OrderSummaryResponse{}, err
	}
	return transport.OrderSummaryResponse{OrderCount: count, TotalPrice: total}, nil
}
