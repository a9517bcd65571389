package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// Payment tracks one gateway checkout attempt for an order. The raw gateway
// response is kept for audit; losing it never fails the order update.
type Payment struct {
	ID               uint64
	OrderID          uint64
	PaymentReference string
	Amount           decimal.Decimal
	Status           PaymentStatus
	GatewayResponse  []byte
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PaymentIntent is what a customer needs to finish checkout.
type PaymentIntent struct {
	OrderID     uint64
	Reference   string
	CheckoutURL string
	Amount      decimal.Decimal
}

// PaymentResult is the reconciled outcome of a gateway verification.
type PaymentResult struct {
	OrderID       uint64
	Reference     string
	PaymentStatus PaymentStatus
	Amount        decimal.Decimal
	PaidAt        string
}
