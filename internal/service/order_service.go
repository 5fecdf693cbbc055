package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// OrderService records placed orders for authenticated users. Fulfillment
// and payment stay out of scope: orders are written as pending and read back,
// never advanced here.
type OrderService interface {
	Place(ctx context.Context, userID uint, products model.JSONList, amount decimal.Decimal) (*model.Order, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Order, error)
}

type orderService struct {
	orders repository.OrderRepository
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) Place(ctx context.Context, userID uint, products model.JSONList, amount decimal.Decimal) (*model.Order, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: products", apperrors.ErrValidation)
	}

	order := &model.Order{
		UserID:   userID,
		Products: products,
		Amount:   amount,
		Status:   model.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (s *orderService) ListForUser(ctx context.Context, userID uint) ([]model.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
