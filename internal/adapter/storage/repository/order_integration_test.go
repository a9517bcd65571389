package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/adapter/config"
	"github.com/jsocialogs/socialshop/internal/adapter/storage"
	"github.com/jsocialogs/socialshop/internal/adapter/storage/repository"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/stretchr/testify/require"
)

// newTestRepository connects to the database named by TEST_DATABASE_URI and
// applies migrations. Tests that need it are skipped when the variable is
// unset, so the suite stays runnable without a database.
func newTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	ctx := context.Background()
	db, err := storage.NewDBStorage(ctx, &config.Database{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.RunMigrations())

	repo, err := repository.NewRepository(db)
	require.NoError(t, err)
	return repo
}

// Concurrent placements against one product must never oversell: the number
// of successful orders is bounded by the starting stock, and stock plus sold
// quantity always equals the starting pool.
func TestRepository_CreateOrder_ConcurrentStock(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	const startingStock = 3
	const placements = 8

	accounts := make([]*domain.Account, 0, startingStock)
	for i := 0; i < startingStock; i++ {
		accounts = append(accounts, &domain.Account{
			Username: fmt.Sprintf("conc-acc-%d", i),
			Password: "encoded",
			Status:   domain.AccountStatusAvailable,
		})
	}
	product, err := repo.CreateProduct(ctx, &domain.Product{
		Name:       fmt.Sprintf("conc-%d", os.Getpid()),
		Category:   "instagram",
		StockCount: startingStock,
		Price:      decimal.MustParse("10"),
		Status:     domain.ProductStatusActive,
	}, accounts)
	require.NoError(t, err)

	var succeeded atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < placements; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repo.CreateOrder(ctx, &domain.Order{
				ProductID:     product.ID,
				Quantity:      1,
				TotalPrice:    decimal.MustParse("10"),
				CustomerName:  "Conc Tester",
				CustomerEmail: fmt.Sprintf("conc-%d@example.com", n),
				Status:        domain.OrderStatusPending,
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
			case errors.Is(err, domain.ErrRowBusy), errors.Is(err, domain.ErrStorage):
				// Losing the row lock entirely is an acceptable outcome under
				// contention; it must not consume stock.
			default:
				t.Errorf("unexpected placement error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	sold := succeeded.Load()
	require.LessOrEqual(t, sold, int64(startingStock))

	after, err := repo.ReadProduct(ctx, product.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, after.StockCount, 0)
	require.Equal(t, int64(startingStock)-sold, int64(after.StockCount))

	available, err := repo.CountAvailableAccounts(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, after.StockCount, available)
}
