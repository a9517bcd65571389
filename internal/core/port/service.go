package port

import (
	"context"

	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
)

type Service interface {
	// Products
	CreateProduct(ctx context.Context, product *domain.Product, accounts []*domain.Account) (*domain.Product, error)
	GetProduct(ctx context.Context, productID uint64) (*domain.Product, int, error)
	ListProducts(ctx context.Context, page Page, search string) ([]*domain.Product, int, error)
	UpdateProduct(ctx context.Context, productID uint64, update domain.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID uint64) error

	// Orders
	PlaceOrder(ctx context.Context, productID uint64, quantity int, customerName, customerEmail string) (*domain.Order, error)
	GetOrdersByCustomer(ctx context.Context, email string, page Page) ([]*domain.Order, int, error)

	// Payments
	StartPayment(ctx context.Context, orderID uint64, callbackURL string) (*domain.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, reference string) (*domain.PaymentResult, error)

	// Customers
	GetCustomerStats(ctx context.Context, email string) (*domain.CustomerStats, error)

	// Wallets
	CreateWallet(ctx context.Context, email string, balance decimal.Decimal) (*domain.Wallet, error)
	GetWallet(ctx context.Context, email string) (*domain.Wallet, []*domain.WalletTransaction, error)
	ApplyWalletTransaction(ctx context.Context, email string, amount decimal.Decimal,
		kind domain.TransactionKind, description string) (*domain.Wallet, error)
}
