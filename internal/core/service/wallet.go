package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/govalues/decimal"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"go.uber.org/zap"
)

const manualReference = "manual"

func (s *Service) CreateWallet(ctx context.Context, email string,
	balance decimal.Decimal) (*domain.Wallet, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: customer_email is required", domain.ErrValidation)
	}
	if balance.IsNeg() {
		return nil, fmt.Errorf("%w: balance must not be negative", domain.ErrValidation)
	}

	wallet, err := s.repo.CreateWallet(ctx, &domain.Wallet{
		CustomerEmail: email,
		Balance:       balance,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrConflictingData) {
			s.logger.Error("Create wallet", zap.String("email", email), zap.Error(err))
		}
		return nil, err
	}
	return wallet, nil
}

func (s *Service) GetWallet(ctx context.Context,
	email string) (*domain.Wallet, []*domain.WalletTransaction, error) {
	if email == "" {
		return nil, nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	return s.repo.ReadWalletByEmail(ctx, email)
}

// ApplyWalletTransaction applies one signed balance delta under the wallet
// row lock, appending the ledger entry in the same unit of work. The wallet
// is created lazily on the first transaction for an email.
func (s *Service) ApplyWalletTransaction(ctx context.Context, email string,
	amount decimal.Decimal, kind domain.TransactionKind, description string) (*domain.Wallet, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if !amount.IsPos() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if kind != domain.TransactionCredit && kind != domain.TransactionDebit {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", domain.ErrValidation, kind)
	}
	if description == "" {
		description = "Manual adjustment"
	}

	wallet, err := s.repo.UpdateWalletByEmail(ctx, email,
		func(w *domain.Wallet) (*domain.WalletTransaction, error) {
			if kind == domain.TransactionDebit && w.Balance.Cmp(amount) < 0 {
				return nil, domain.ErrInsufficientBalance
			}

			var newBalance decimal.Decimal
			var err error
			if kind == domain.TransactionCredit {
				newBalance, err = w.Balance.Add(amount)
			} else {
				newBalance, err = w.Balance.Sub(amount)
			}
			if err != nil {
				return nil, fmt.Errorf("math error: %w", err)
			}
			w.Balance = newBalance

			return &domain.WalletTransaction{
				Amount:        amount,
				Kind:          kind,
				Description:   description,
				ReferenceType: manualReference,
			}, nil
		})
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			s.logger.Error("Wallet transaction", zap.String("email", email),
				zap.String("kind", string(kind)), zap.Error(err))
		}
		return nil, err
	}

	s.audit.Record(ctx, "INFO", "wallet transaction applied", map[string]any{
		"email":  email,
		"kind":   string(kind),
		"amount": amount.String(),
	})

	return wallet, nil
}
