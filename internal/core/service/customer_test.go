package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GetCustomerStats(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("returning customer", func(t *testing.T) {
		s, deps := newTestService(t, mockCtrl, nil)

		deps.repo.EXPECT().ReadCustomerStats(gomock.Any(), "ada@example.com").
			Return(&domain.CustomerStats{
				CustomerEmail: "ada@example.com",
				TotalOrders:   4,
				TotalSpent:    decimal.MustParse("119.88"),
				LoyaltyPoints: 119,
			}, nil)

		stats, err := s.GetCustomerStats(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(4), stats.TotalOrders)
		assert.Equal(t, int64(119), stats.LoyaltyPoints)
	})

	t.Run("new customer gets an empty summary", func(t *testing.T) {
		s, deps := newTestService(t, mockCtrl, nil)

		deps.repo.EXPECT().ReadCustomerStats(gomock.Any(), "new@example.com").
			Return(nil, domain.ErrDataNotFound)

		stats, err := s.GetCustomerStats(context.Background(), "new@example.com")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", stats.CustomerEmail)
		assert.Zero(t, stats.TotalOrders)
	})
}
