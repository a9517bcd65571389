package port

import (
	"context"

	"github.com/jsocialogs/socialshop/internal/core/domain"
)

// Page is the common list-request window: page and limit both start at 1.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// UpdateWalletFn runs inside the repository transaction holding the wallet
// row lock. It mutates the balance and returns the ledger entry to append;
// any error rolls the whole operation back.
type UpdateWalletFn func(wallet *domain.Wallet) (*domain.WalletTransaction, error)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Product
	CreateProduct(ctx context.Context, product *domain.Product, accounts []*domain.Account) (*domain.Product, error)
	ReadProduct(ctx context.Context, productID uint64) (*domain.Product, error)
	ListProducts(ctx context.Context, page Page, search string) ([]*domain.Product, int, error)
	UpdateProduct(ctx context.Context, productID uint64, update domain.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID uint64) error
	CountAvailableAccounts(ctx context.Context, productID uint64) (int, error)

	// Order. CreateOrder atomically reserves accounts, decrements stock,
	// inserts the order and bumps customer stats.
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	ReadOrderByReference(ctx context.Context, reference string) (*domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, email string, page Page) ([]*domain.Order, int, error)
	SetOrderReference(ctx context.Context, orderID uint64, reference string) error
	// ApplyPaymentResult updates payment/order status under the order row
	// lock. applied=false means the order was already confirmed and nothing
	// changed.
	ApplyPaymentResult(ctx context.Context, orderID uint64, status domain.PaymentStatus) (order *domain.Order, applied bool, err error)
	ReleaseOrderAccounts(ctx context.Context, orderID uint64) error

	// Wallet
	CreateWallet(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error)
	ReadWalletByEmail(ctx context.Context, email string) (*domain.Wallet, []*domain.WalletTransaction, error)
	UpdateWalletByEmail(ctx context.Context, email string, updateFn UpdateWalletFn) (*domain.Wallet, error)

	// Customer
	ReadCustomerStats(ctx context.Context, email string) (*domain.CustomerStats, error)

	// Payment
	CreatePayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	UpdatePaymentResult(ctx context.Context, reference string, status domain.PaymentStatus, gatewayResponse []byte) error
}
