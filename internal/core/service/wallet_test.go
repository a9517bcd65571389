package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"github.com/jsocialogs/socialshop/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWalletStore runs the service's update closure against an in-memory
// wallet the way the repository does inside its transaction, capturing the
// appended ledger entries.
type fakeWalletStore struct {
	wallet       domain.Wallet
	transactions []*domain.WalletTransaction
}

func (f *fakeWalletStore) apply(repo *mock.MockRepository) {
	repo.EXPECT().
		UpdateWalletByEmail(gomock.Any(), f.wallet.CustomerEmail, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fn port.UpdateWalletFn) (*domain.Wallet, error) {
			w := f.wallet
			transaction, err := fn(&w)
			if err != nil {
				return nil, err
			}
			f.wallet = w
			transaction.WalletID = w.ID
			f.transactions = append(f.transactions, transaction)
			return &w, nil
		}).
		AnyTimes()
}

func TestService_ApplyWalletTransaction(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("debit over balance fails and appends nothing", func(t *testing.T) {
		s, deps := newTestService(t, mockCtrl, nil)

		store := &fakeWalletStore{wallet: domain.Wallet{
			ID:            1,
			CustomerEmail: "ada@example.com",
			Balance:       decimal.MustParse("100"),
		}}
		store.apply(deps.repo)

		wallet, err := s.ApplyWalletTransaction(context.Background(), "ada@example.com",
			decimal.MustParse("150"), domain.TransactionDebit, "withdrawal")

		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		assert.Nil(t, wallet)
		assert.Equal(t, decimal.MustParse("100"), store.wallet.Balance)
		assert.Empty(t, store.transactions)
	})

	t.Run("credit then debit keeps balance equal to ledger sum", func(t *testing.T) {
		s, deps := newTestService(t, mockCtrl, nil)

		store := &fakeWalletStore{wallet: domain.Wallet{
			ID:            2,
			CustomerEmail: "ada@example.com",
			Balance:       decimal.Zero,
		}}
		store.apply(deps.repo)

		wallet, err := s.ApplyWalletTransaction(context.Background(), "ada@example.com",
			decimal.MustParse("50"), domain.TransactionCredit, "top up")
		require.NoError(t, err)
		assert.Equal(t, decimal.MustParse("50"), wallet.Balance)

		wallet, err = s.ApplyWalletTransaction(context.Background(), "ada@example.com",
			decimal.MustParse("30"), domain.TransactionDebit, "purchase")
		require.NoError(t, err)
		assert.Equal(t, decimal.MustParse("20"), wallet.Balance)

		require.Len(t, store.transactions, 2)
		sum := decimal.Zero
		for _, transaction := range store.transactions {
			sum, err = sum.Add(transaction.Signed())
			require.NoError(t, err)
		}
		assert.Equal(t, store.wallet.Balance, sum)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		s, _ := newTestService(t, mockCtrl, nil)

		_, err := s.ApplyWalletTransaction(context.Background(), "ada@example.com",
			decimal.Zero, domain.TransactionCredit, "")
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = s.ApplyWalletTransaction(context.Background(), "ada@example.com",
			decimal.MustParse("-5"), domain.TransactionDebit, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		s, _ := newTestService(t, mockCtrl, nil)

		_, err := s.ApplyWalletTransaction(context.Background(), "ada@example.com",
			decimal.MustParse("5"), domain.TransactionKind("Transfer"), "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestService_CreateWallet(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("create good wallet", func(t *testing.T) {
		s, deps := newTestService(t, mockCtrl, nil)

		deps.repo.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, w *domain.Wallet) (*domain.Wallet, error) {
				w.ID = 9
				return w, nil
			})

		wallet, err := s.CreateWallet(context.Background(), "ada@example.com", decimal.MustParse("25"))
		assert.NoError(t, err)
		assert.Equal(t, uint64(9), wallet.ID)
		assert.Equal(t, decimal.MustParse("25"), wallet.Balance)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		s, deps := newTestService(t, mockCtrl, nil)

		deps.repo.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrConflictingData)

		_, err := s.CreateWallet(context.Background(), "ada@example.com", decimal.Zero)
		assert.ErrorIs(t, err, domain.ErrConflictingData)
	})

	t.Run("negative starting balance rejected", func(t *testing.T) {
		s, _ := newTestService(t, mockCtrl, nil)

		_, err := s.CreateWallet(context.Background(), "ada@example.com", decimal.MustParse("-1"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
