package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"github.com/jsocialogs/socialshop/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ConfirmPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	const reference = "ref-123"

	verified := &port.VerifiedPayment{
		Status:      "success",
		AmountMinor: 5997,
		PaidAt:      "2025-01-15T10:30:00Z",
		OrderID:     101,
		Raw:         []byte(`{"status":true}`),
	}

	confirmedOrder := domain.Order{
		ID:            101,
		ProductID:     7,
		Quantity:      3,
		TotalPrice:    decimal.MustParse("59.97"),
		Status:        domain.OrderStatusCompleted,
		PaymentStatus: domain.PaymentStatusSuccess,
	}

	type confirmPaymentTest struct {
		name      string
		mock      prepareMocks
		expError  error
		expStatus domain.PaymentStatus
	}

	tests := []confirmPaymentTest{
		{
			name: "first successful confirmation applies side effects",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				gateway.EXPECT().Verify(gomock.Any(), reference).Return(verified, nil)
				repo.EXPECT().ApplyPaymentResult(gomock.Any(), uint64(101), domain.PaymentStatusSuccess).
					Return(&confirmedOrder, true, nil)
				repo.EXPECT().UpdatePaymentResult(gomock.Any(), reference,
					domain.PaymentStatusSuccess, verified.Raw).Return(nil)
			},
			expStatus: domain.PaymentStatusSuccess,
		},
		{
			name: "repeated confirmation is a no-op",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				gateway.EXPECT().Verify(gomock.Any(), reference).Return(verified, nil)
				repo.EXPECT().ApplyPaymentResult(gomock.Any(), uint64(101), domain.PaymentStatusSuccess).
					Return(&confirmedOrder, false, nil)
				// No UpdatePaymentResult: nothing was applied.
			},
			expStatus: domain.PaymentStatusSuccess,
		},
		{
			name: "failed gateway status marks the order failed",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				failed := *verified
				failed.Status = "abandoned"
				gateway.EXPECT().Verify(gomock.Any(), reference).Return(&failed, nil)

				failedOrder := confirmedOrder
				failedOrder.Status = domain.OrderStatusPending
				failedOrder.PaymentStatus = domain.PaymentStatusFailed
				repo.EXPECT().ApplyPaymentResult(gomock.Any(), uint64(101), domain.PaymentStatusFailed).
					Return(&failedOrder, true, nil)
				repo.EXPECT().UpdatePaymentResult(gomock.Any(), reference,
					domain.PaymentStatusFailed, failed.Raw).Return(nil)
			},
			expStatus: domain.PaymentStatusFailed,
		},
		{
			name: "gateway failure surfaces as gateway error",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				gateway.EXPECT().Verify(gomock.Any(), reference).
					Return(nil, errors.New("paystack: connection reset"))
			},
			expError: domain.ErrGateway,
		},
		{
			name: "reference resolved through order lookup",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				noMeta := *verified
				noMeta.OrderID = 0
				gateway.EXPECT().Verify(gomock.Any(), reference).Return(&noMeta, nil)
				repo.EXPECT().ReadOrderByReference(gomock.Any(), reference).
					Return(&confirmedOrder, nil)
				repo.EXPECT().ApplyPaymentResult(gomock.Any(), uint64(101), domain.PaymentStatusSuccess).
					Return(&confirmedOrder, false, nil)
			},
			expStatus: domain.PaymentStatusSuccess,
		},
		{
			name: "unknown reference is not found",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				noMeta := *verified
				noMeta.OrderID = 0
				gateway.EXPECT().Verify(gomock.Any(), reference).Return(&noMeta, nil)
				repo.EXPECT().ReadOrderByReference(gomock.Any(), reference).
					Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _ := newTestService(t, mockCtrl, test.mock)

			result, err := s.ConfirmPayment(context.Background(), reference)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(101), result.OrderID)
			assert.Equal(t, reference, result.Reference)
			assert.Equal(t, test.expStatus, result.PaymentStatus)
		})
	}
}

// Two confirmations in a row: the stored result comes back both times and the
// side effects run once.
func TestService_ConfirmPayment_Idempotent(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	const reference = "ref-repeat"

	verified := &port.VerifiedPayment{
		Status:      "success",
		AmountMinor: 1000,
		OrderID:     55,
		Raw:         []byte(`{}`),
	}
	order := domain.Order{
		ID:            55,
		TotalPrice:    decimal.MustParse("10"),
		Status:        domain.OrderStatusCompleted,
		PaymentStatus: domain.PaymentStatusSuccess,
	}

	s, deps := newTestService(t, mockCtrl, nil)

	deps.gateway.EXPECT().Verify(gomock.Any(), reference).Return(verified, nil).Times(2)
	first := deps.repo.EXPECT().
		ApplyPaymentResult(gomock.Any(), uint64(55), domain.PaymentStatusSuccess).
		Return(&order, true, nil)
	deps.repo.EXPECT().
		ApplyPaymentResult(gomock.Any(), uint64(55), domain.PaymentStatusSuccess).
		Return(&order, false, nil).
		After(first)
	deps.repo.EXPECT().
		UpdatePaymentResult(gomock.Any(), reference, domain.PaymentStatusSuccess, verified.Raw).
		Return(nil).
		Times(1)

	resultA, err := s.ConfirmPayment(context.Background(), reference)
	require.NoError(t, err)
	resultB, err := s.ConfirmPayment(context.Background(), reference)
	require.NoError(t, err)

	assert.Equal(t, resultA.OrderID, resultB.OrderID)
	assert.Equal(t, resultA.PaymentStatus, resultB.PaymentStatus)
}

func TestService_StartPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	pending := domain.Order{
		ID:            101,
		TotalPrice:    decimal.MustParse("59.97"),
		CustomerEmail: "ada@example.com",
		Status:        domain.OrderStatusPending,
	}

	t.Run("opens checkout for a pending order", func(t *testing.T) {
		s, deps := newTestService(t, mockCtrl, nil)

		deps.repo.EXPECT().ReadOrder(gomock.Any(), uint64(101)).Return(&pending, nil)
		deps.repo.EXPECT().SetOrderReference(gomock.Any(), uint64(101), gomock.Any()).Return(nil)
		deps.repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
				assert.Equal(t, uint64(101), p.OrderID)
				assert.Equal(t, decimal.MustParse("59.97"), p.Amount)
				return p, nil
			})
		deps.gateway.EXPECT().Initialize(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req port.InitializePayment) (*port.CheckoutSession, error) {
				assert.Equal(t, "ada@example.com", req.Email)
				assert.Equal(t, int64(5997), req.AmountMinor)
				assert.Equal(t, uint64(101), req.OrderID)
				return &port.CheckoutSession{
					CheckoutURL: "https://checkout.paystack.com/abc",
					Reference:   req.Reference,
				}, nil
			})

		intent, err := s.StartPayment(context.Background(), 101, "")
		require.NoError(t, err)
		assert.Equal(t, uint64(101), intent.OrderID)
		assert.NotEmpty(t, intent.Reference)
		assert.Equal(t, "https://checkout.paystack.com/abc", intent.CheckoutURL)
	})

	t.Run("already paid order is not payable", func(t *testing.T) {
		s, deps := newTestService(t, mockCtrl, nil)

		paid := pending
		paid.Status = domain.OrderStatusCompleted
		paid.PaymentStatus = domain.PaymentStatusSuccess
		deps.repo.EXPECT().ReadOrder(gomock.Any(), uint64(101)).Return(&paid, nil)

		_, err := s.StartPayment(context.Background(), 101, "")
		assert.ErrorIs(t, err, domain.ErrOrderNotPayable)
	})
}
