package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "Active"
	ProductStatusInactive ProductStatus = "Inactive"
)

// Product is one sellable position. StockCount always equals the number of
// its accounts in AccountStatusAvailable.
type Product struct {
	ID           uint64
	Name         string
	Category     string
	Followers    int
	StockCount   int
	Price        decimal.Decimal
	TutorialLink string
	Status       ProductStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AccountStatus string

const (
	AccountStatusAvailable AccountStatus = "Available"
	AccountStatusReserved  AccountStatus = "Reserved"
	// AccountStatusRetired marks credentials pulled from sale permanently.
	// Nothing in the order flow sets it.
	AccountStatusRetired AccountStatus = "Retired"
)

// Account is a single serialized inventory unit: one credential pair owned
// by a product. Password is stored in its reversibly-encoded form.
type Account struct {
	ID        uint64
	ProductID uint64
	Username  string
	Password  string
	Status    AccountStatus
	CreatedAt time.Time
}

// ProductUpdate enumerates the mutable product fields. Nil means "leave as is".
type ProductUpdate struct {
	Name         *string
	Category     *string
	Followers    *int
	Price        *decimal.Decimal
	TutorialLink *string
	Status       *ProductStatus
}

func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Category == nil && u.Followers == nil &&
		u.Price == nil && u.TutorialLink == nil && u.Status == nil
}
