package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type TransactionKind string

const (
	TransactionCredit TransactionKind = "Credit"
	TransactionDebit  TransactionKind = "Debit"
)

// Wallet holds a customer's balance. The balance is derivable: it always
// equals the sum of signed amounts over the wallet's transaction log.
type Wallet struct {
	ID            uint64
	CustomerEmail string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WalletTransaction is one append-only ledger entry. Amount is a positive
// magnitude; Kind carries the sign.
type WalletTransaction struct {
	ID            uint64
	WalletID      uint64
	Amount        decimal.Decimal
	Kind          TransactionKind
	Description   string
	ReferenceType string
	CreatedAt     time.Time
}

// Signed returns the transaction amount with the sign implied by its kind.
func (t *WalletTransaction) Signed() decimal.Decimal {
	if t.Kind == TransactionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
