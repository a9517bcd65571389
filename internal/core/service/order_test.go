package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"github.com/jsocialogs/socialshop/internal/core/port/mock"
	"github.com/jsocialogs/socialshop/internal/core/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway)

type testDeps struct {
	repo    *mock.MockRepository
	gateway *mock.MockPaymentGateway
	cipher  *mock.MockCredentialCipher
	audit   *mock.MockAuditLog
}

func newTestService(t *testing.T, mockCtrl *gomock.Controller,
	prepare prepareMocks) (*service.Service, *testDeps) {
	t.Helper()

	deps := &testDeps{
		repo:    mock.NewMockRepository(mockCtrl),
		gateway: mock.NewMockPaymentGateway(mockCtrl),
		cipher:  mock.NewMockCredentialCipher(mockCtrl),
		audit:   mock.NewMockAuditLog(mockCtrl),
	}
	deps.audit.EXPECT().
		Record(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		AnyTimes()

	if prepare != nil {
		prepare(deps.repo, deps.gateway)
	}

	logger, _ := zap.NewProduction()
	s, err := service.NewService(deps.repo, deps.gateway, deps.cipher, deps.audit, logger)
	assert.NoError(t, err)

	return s, deps
}

func pageOf(page, limit int) port.Page {
	return port.Page{Page: page, Limit: limit}
}

func TestService_PlaceOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	product := domain.Product{
		ID:         7,
		Name:       "IG bundle",
		Category:   "instagram",
		StockCount: 5,
		Price:      decimal.MustParse("19.99"),
		Status:     domain.ProductStatusActive,
	}

	type placeOrderTest struct {
		name          string
		productID     uint64
		quantity      int
		customerName  string
		customerEmail string
		mock          prepareMocks
		expError      error
		expTotal      decimal.Decimal
	}

	tests := []placeOrderTest{
		{
			name:          "place good order",
			productID:     7,
			quantity:      3,
			customerName:  "Ada",
			customerEmail: "ada@example.com",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				repo.EXPECT().ReadProduct(gomock.Any(), uint64(7)).Return(&product, nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order) (*domain.Order, error) {
						order.ID = 101
						return order, nil
					})
			},
			expError: nil,
			expTotal: decimal.MustParse("59.97"),
		},
		{
			name:          "zero quantity",
			productID:     7,
			quantity:      0,
			customerName:  "Ada",
			customerEmail: "ada@example.com",
			mock:          func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {},
			expError:      domain.ErrValidation,
		},
		{
			name:          "product not found",
			productID:     404,
			quantity:      1,
			customerName:  "Ada",
			customerEmail: "ada@example.com",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				repo.EXPECT().ReadProduct(gomock.Any(), uint64(404)).
					Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
		},
		{
			name:          "inactive product reads as absent",
			productID:     7,
			quantity:      1,
			customerName:  "Ada",
			customerEmail: "ada@example.com",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				inactive := product
				inactive.Status = domain.ProductStatusInactive
				repo.EXPECT().ReadProduct(gomock.Any(), uint64(7)).Return(&inactive, nil)
			},
			expError: domain.ErrDataNotFound,
		},
		{
			name:          "insufficient stock",
			productID:     7,
			quantity:      6,
			customerName:  "Ada",
			customerEmail: "ada@example.com",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				repo.EXPECT().ReadProduct(gomock.Any(), uint64(7)).Return(&product, nil)
			},
			expError: domain.ErrInsufficientStock,
		},
		{
			name:          "reservation loses race under the product lock",
			productID:     7,
			quantity:      3,
			customerName:  "Ada",
			customerEmail: "ada@example.com",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				repo.EXPECT().ReadProduct(gomock.Any(), uint64(7)).Return(&product, nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrInsufficientStock)
			},
			expError: domain.ErrInsufficientStock,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _ := newTestService(t, mockCtrl, test.mock)

			order, err := s.PlaceOrder(context.Background(),
				test.productID, test.quantity, test.customerName, test.customerEmail)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, order)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expTotal, order.TotalPrice)
			assert.Equal(t, domain.OrderStatusPending, order.Status)
			assert.Equal(t, domain.PaymentStatusUnset, order.PaymentStatus)
		})
	}
}

func TestService_GetOrdersByCustomer(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, deps := newTestService(t, mockCtrl, nil)

	orders := []*domain.Order{
		{ID: 2, CustomerEmail: "ada@example.com"},
		{ID: 1, CustomerEmail: "ada@example.com"},
	}
	deps.repo.EXPECT().
		ListOrdersByCustomer(gomock.Any(), "ada@example.com", gomock.Any()).
		Return(orders, 12, nil)

	list, total, err := s.GetOrdersByCustomer(context.Background(), "ada@example.com",
		pageOf(1, 10))
	assert.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, list, 2)

	_, _, err = s.GetOrdersByCustomer(context.Background(), "", pageOf(1, 10))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
