package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
)

const recentTransactionsLimit = 20

func (r *Repository) CreateWallet(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error) {
	sql, args, err := r.db.QueryBuilder.
		Insert("wallets").
		Columns("customer_email", "balance").
		Values(wallet.CustomerEmail, wallet.Balance).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&wallet.ID, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		return nil, classify(err)
	}

	return wallet, nil
}

// ReadWalletByEmail returns the wallet and its most recent transactions.
// A missing wallet is ErrDataNotFound; the caller decides whether that means
// a placeholder or a failure.
func (r *Repository) ReadWalletByEmail(ctx context.Context,
	email string) (*domain.Wallet, []*domain.WalletTransaction, error) {
	sql, args, err := r.db.QueryBuilder.
		Select("id", "customer_email", "balance", "created_at", "updated_at").
		From("wallets").
		Where(sq.Eq{"customer_email": email}).
		ToSql()
	if err != nil {
		return nil, nil, err
	}

	wallet := domain.Wallet{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&wallet.ID,
		&wallet.CustomerEmail,
		&wallet.Balance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return nil, nil, classify(err)
	}

	sql, args, err = r.db.QueryBuilder.
		Select("id", "wallet_id", "amount", "kind", "description", "reference_type", "created_at").
		From("wallet_transactions").
		Where(sq.Eq{"wallet_id": wallet.ID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(recentTransactionsLimit).
		ToSql()
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, classify(err)
	}
	defer rows.Close()

	transactions := make([]*domain.WalletTransaction, 0)
	for rows.Next() {
		t := domain.WalletTransaction{}
		err := rows.Scan(&t.ID, &t.WalletID, &t.Amount, &t.Kind,
			&t.Description, &t.ReferenceType, &t.CreatedAt)
		if err != nil {
			return nil, nil, err
		}
		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return &wallet, transactions, nil
}

// UpdateWalletByEmail runs updateFn under an exclusive lock on the wallet
// row, creating the wallet lazily when the email has none yet. The balance
// write and the ledger append commit together or not at all.
func (r *Repository) UpdateWalletByEmail(ctx context.Context, email string,
	updateFn port.UpdateWalletFn) (*domain.Wallet, error) {
	var wallet *domain.Wallet

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		sql, args, err := r.db.QueryBuilder.
			Select("id", "customer_email", "balance", "created_at", "updated_at").
			From("wallets").
			Where(sq.Eq{"customer_email": email}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}

		w := domain.Wallet{}
		err = tx.QueryRow(ctx, sql, args...).Scan(
			&w.ID, &w.CustomerEmail, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			w = domain.Wallet{CustomerEmail: email, Balance: decimal.Zero}
			sql, args, err = r.db.QueryBuilder.
				Insert("wallets").
				Columns("customer_email", "balance").
				Values(email, decimal.Zero).
				Suffix("RETURNING id, created_at, updated_at").
				ToSql()
			if err != nil {
				return err
			}
			err = tx.QueryRow(ctx, sql, args...).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
		}
		if err != nil {
			return err
		}

		transaction, err := updateFn(&w)
		if err != nil {
			return err
		}

		sql, args, err = r.db.QueryBuilder.
			Update("wallets").
			Set("balance", w.Balance).
			Set("updated_at", time.Now()).
			Where(sq.Eq{"id": w.ID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		sql, args, err = r.db.QueryBuilder.
			Insert("wallet_transactions").
			Columns("wallet_id", "amount", "kind", "description", "reference_type").
			Values(w.ID, transaction.Amount, transaction.Kind,
				transaction.Description, transaction.ReferenceType).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		wallet = &w
		return nil
	})
	if err != nil {
		return nil, err
	}

	return wallet, nil
}
