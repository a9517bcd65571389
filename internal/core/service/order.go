package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"go.uber.org/zap"
)

// PlaceOrder validates the request, snapshots the total price and hands the
// reservation, order insert and customer-stats bump to the repository as one
// atomic unit. Stats are applied here and only here: payment confirmation
// never increments them again.
func (s *Service) PlaceOrder(ctx context.Context, productID uint64, quantity int,
	customerName, customerEmail string) (*domain.Order, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrValidation)
	}
	if customerName == "" || customerEmail == "" {
		return nil, fmt.Errorf("%w: customer name and email are required", domain.ErrValidation)
	}

	product, err := s.repo.ReadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != domain.ProductStatusActive {
		return nil, domain.ErrDataNotFound
	}
	if product.StockCount < quantity {
		return nil, domain.ErrInsufficientStock
	}

	qty, err := decimal.New(int64(quantity), 0)
	if err != nil {
		return nil, fmt.Errorf("math error: %w", err)
	}
	totalPrice, err := product.Price.Mul(qty)
	if err != nil {
		return nil, fmt.Errorf("math error: %w", err)
	}

	order := &domain.Order{
		ProductID:     productID,
		Quantity:      quantity,
		TotalPrice:    totalPrice,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusUnset,
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, err
		}
		s.logger.Error("Create order", zap.Uint64("product", productID), zap.Error(err))
		s.audit.Record(ctx, "ERROR", "order creation failed", map[string]any{
			"product_id": productID,
			"quantity":   quantity,
			"email":      customerEmail,
		})
		return nil, err
	}

	s.audit.Record(ctx, "INFO", "order created", map[string]any{
		"order_id":    created.ID,
		"product_id":  productID,
		"quantity":    quantity,
		"total_price": created.TotalPrice.String(),
	})

	return created, nil
}

func (s *Service) GetOrdersByCustomer(ctx context.Context, email string,
	page port.Page) ([]*domain.Order, int, error) {
	if email == "" {
		return nil, 0, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	list, total, err := s.repo.ListOrdersByCustomer(ctx, email, page)
	if err != nil {
		s.logger.Error("List orders for customer", zap.String("email", email), zap.Error(err))
		return nil, 0, err
	}
	return list, total, nil
}
