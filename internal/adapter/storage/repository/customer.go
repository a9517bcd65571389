package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jsocialogs/socialshop/internal/core/domain"
)

// bumpCustomerStats applies one qualifying order to the per-customer totals,
// creating the row on first contact. Runs inside the caller's transaction so
// the increment commits or rolls back with the order.
func bumpCustomerStats(ctx context.Context, tx pgx.Tx, email string,
	totalPrice decimal.Decimal) error {
	points := domain.LoyaltyPoints(totalPrice)

	_, err := tx.Exec(ctx, `
		INSERT INTO customers (customer_email, total_orders, total_spent, loyalty_points)
		VALUES ($1, 1, $2, $3)
		ON CONFLICT (customer_email) DO UPDATE SET
			total_orders   = customers.total_orders + 1,
			total_spent    = customers.total_spent + EXCLUDED.total_spent,
			loyalty_points = customers.loyalty_points + EXCLUDED.loyalty_points`,
		email, totalPrice, points)
	return err
}

func (r *Repository) ReadCustomerStats(ctx context.Context, email string) (*domain.CustomerStats, error) {
	sql, args, err := r.db.QueryBuilder.
		Select("customer_email", "total_orders", "total_spent", "loyalty_points").
		From("customers").
		Where(sq.Eq{"customer_email": email}).
		ToSql()
	if err != nil {
		return nil, err
	}

	stats := domain.CustomerStats{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&stats.CustomerEmail,
		&stats.TotalOrders,
		&stats.TotalSpent,
		&stats.LoyaltyPoints,
	)
	if err != nil {
		return nil, classify(err)
	}

	return &stats, nil
}
