package domain

import (
	"math"

	"github.com/govalues/decimal"
)

// CustomerStats is a per-customer running summary of qualifying orders.
// Every placed order contributes to it exactly once.
type CustomerStats struct {
	CustomerEmail string
	TotalOrders   int64
	TotalSpent    decimal.Decimal
	LoyaltyPoints int64
}

// LoyaltyPoints awards one point per whole currency unit spent.
func LoyaltyPoints(spent decimal.Decimal) int64 {
	f, _ := spent.Float64()
	return int64(math.Floor(f))
}
