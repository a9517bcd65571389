package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnset   PaymentStatus = ""
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order references a product without owning it. TotalPrice is a snapshot of
// price × quantity at creation time and never changes afterwards.
type Order struct {
	ID               uint64
	ProductID        uint64
	Quantity         int
	TotalPrice       decimal.Decimal
	CustomerName     string
	CustomerEmail    string
	Status           OrderStatus
	PaymentStatus    PaymentStatus
	PaymentReference string
	CreatedAt        time.Time
}

// Terminal reports whether the order reached a state the payment reconciler
// must not overwrite.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}
