package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"go.uber.org/zap"
)

// StartPayment opens a gateway checkout for a pending order. The generated
// reference is stored on the order before the gateway call so a verification
// callback can always be resolved back to the order.
func (s *Service) StartPayment(ctx context.Context, orderID uint64,
	callbackURL string) (*domain.PaymentIntent, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPending ||
		order.PaymentStatus == domain.PaymentStatusSuccess {
		return nil, domain.ErrOrderNotPayable
	}

	reference := uuid.NewString()
	if err := s.repo.SetOrderReference(ctx, orderID, reference); err != nil {
		s.logger.Error("Set order reference", zap.Uint64("order", orderID), zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.CreatePayment(ctx, &domain.Payment{
		OrderID:          orderID,
		PaymentReference: reference,
		Amount:           order.TotalPrice,
	}); err != nil {
		s.logger.Error("Create payment record", zap.Uint64("order", orderID), zap.Error(err))
		return nil, err
	}

	session, err := s.gateway.Initialize(ctx, port.InitializePayment{
		Email:       order.CustomerEmail,
		AmountMinor: minorUnits(order.TotalPrice),
		Reference:   reference,
		CallbackURL: callbackURL,
		OrderID:     orderID,
	})
	if err != nil {
		s.logger.Error("Gateway initialize", zap.Uint64("order", orderID), zap.Error(err))
		return nil, domain.ErrGateway
	}

	return &domain.PaymentIntent{
		OrderID:     orderID,
		Reference:   session.Reference,
		CheckoutURL: session.CheckoutURL,
		Amount:      order.TotalPrice,
	}, nil
}

// ConfirmPayment verifies a reference with the gateway and applies the result
// to the order. Repeated or concurrent calls for the same reference are safe:
// once an order's payment status is success, later confirmations return the
// stored result without touching anything.
func (s *Service) ConfirmPayment(ctx context.Context,
	reference string) (*domain.PaymentResult, error) {
	if reference == "" {
		return nil, fmt.Errorf("%w: payment reference is required", domain.ErrValidation)
	}

	verified, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		s.logger.Error("Gateway verify", zap.String("reference", reference), zap.Error(err))
		s.audit.Record(ctx, "ERROR", "payment verification failed", map[string]any{
			"reference": reference,
		})
		return nil, domain.ErrGateway
	}

	status := domain.PaymentStatusFailed
	if verified.Status == "success" {
		status = domain.PaymentStatusSuccess
	}

	orderID := verified.OrderID
	if orderID == 0 {
		order, err := s.repo.ReadOrderByReference(ctx, reference)
		if err != nil {
			return nil, err
		}
		orderID = order.ID
	}

	order, applied, err := s.repo.ApplyPaymentResult(ctx, orderID, status)
	if err != nil {
		s.logger.Error("Apply payment result", zap.Uint64("order", orderID), zap.Error(err))
		return nil, err
	}

	if applied {
		// Keeping the raw gateway response is best-effort: the order update
		// already committed.
		if err := s.repo.UpdatePaymentResult(ctx, reference, status, verified.Raw); err != nil {
			s.logger.Warn("Store gateway response", zap.String("reference", reference), zap.Error(err))
		}
		s.audit.Record(ctx, "INFO", "payment reconciled", map[string]any{
			"order_id":  orderID,
			"reference": reference,
			"status":    string(status),
		})
	}

	amount, err := decimal.New(verified.AmountMinor, 2)
	if err != nil {
		amount = decimal.Zero
	}

	return &domain.PaymentResult{
		OrderID:       order.ID,
		Reference:     reference,
		PaymentStatus: order.PaymentStatus,
		Amount:        amount,
		PaidAt:        verified.PaidAt,
	}, nil
}

func minorUnits(amount decimal.Decimal) int64 {
	f, _ := amount.Float64()
	return int64(math.Round(f * 100))
}
