package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
)

const orderColumns = `id, product_id, quantity, total_price, customer_name, customer_email,
	status, payment_status, COALESCE(payment_reference, ''), created_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.ProductID,
		&order.Quantity,
		&order.TotalPrice,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.Status,
		&order.PaymentStatus,
		&order.PaymentReference,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder is the one atomic unit behind order placement: it serializes on
// the product row, re-checks stock under the lock, claims the lowest-id
// available accounts, decrements stock, inserts the order and bumps the
// customer stats. Any failure rolls the whole thing back.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		// Exclusive product lock: two placements on the same product are
		// serialized here, placements on other products are not.
		sql, args, err := r.db.QueryBuilder.
			Select("stock_count", "status").
			From("products").
			Where(sq.Eq{"id": order.ProductID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}

		var stock int
		var status domain.ProductStatus
		if err := tx.QueryRow(ctx, sql, args...).Scan(&stock, &status); err != nil {
			return err
		}
		if status != domain.ProductStatusActive {
			return domain.ErrDataNotFound
		}
		if stock < order.Quantity {
			return domain.ErrInsufficientStock
		}

		// Claim accounts FIFO by id. The subselect locks the chosen rows so
		// no reader outside the product lock can claim them either.
		rows, err := tx.Query(ctx, `
			UPDATE product_accounts SET status = $1
			WHERE id IN (
				SELECT id FROM product_accounts
				WHERE product_id = $2 AND status = $3
				ORDER BY id
				LIMIT $4
				FOR UPDATE
			)
			RETURNING id`,
			domain.AccountStatusReserved, order.ProductID, domain.AccountStatusAvailable, order.Quantity)
		if err != nil {
			return err
		}
		accountIDs := make([]uint64, 0, order.Quantity)
		for rows.Next() {
			var id uint64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			accountIDs = append(accountIDs, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(accountIDs) < order.Quantity {
			// Stock counter and pool disagree; refuse rather than oversell.
			return domain.ErrInsufficientStock
		}

		sql, args, err = r.db.QueryBuilder.
			Update("products").
			Set("stock_count", sq.Expr("stock_count - ?", order.Quantity)).
			Where(sq.Eq{"id": order.ProductID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		sql, args, err = r.db.QueryBuilder.
			Insert("orders").
			Columns("product_id", "quantity", "total_price", "customer_name",
				"customer_email", "status", "payment_status").
			Values(order.ProductID, order.Quantity, order.TotalPrice,
				order.CustomerName, order.CustomerEmail, order.Status, order.PaymentStatus).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&order.ID, &order.CreatedAt); err != nil {
			return err
		}

		linkSt := r.db.QueryBuilder.Insert("order_accounts").Columns("order_id", "account_id")
		for _, accountID := range accountIDs {
			linkSt = linkSt.Values(order.ID, accountID)
		}
		sql, args, err = linkSt.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		return bumpCustomerStats(ctx, tx, order.CustomerEmail, order.TotalPrice)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	sql, args, err := r.db.QueryBuilder.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, classify(err)
	}
	return order, nil
}

func (r *Repository) ReadOrderByReference(ctx context.Context, reference string) (*domain.Order, error) {
	sql, args, err := r.db.QueryBuilder.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"payment_reference": reference}).
		ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, classify(err)
	}
	return order, nil
}

func (r *Repository) ListOrdersByCustomer(ctx context.Context, email string,
	page port.Page) ([]*domain.Order, int, error) {
	sql, args, err := r.db.QueryBuilder.
		Select("count(*)").
		From("orders").
		Where(sq.Eq{"customer_email": email}).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	sql, args, err = r.db.QueryBuilder.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"customer_email": email}).
		OrderBy("created_at DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *Repository) SetOrderReference(ctx context.Context, orderID uint64, reference string) error {
	sql, args, err := r.db.QueryBuilder.
		Update("orders").
		Set("payment_reference", reference).
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

// ApplyPaymentResult flips order payment state under the order row lock.
// A successfully confirmed order is never touched again: the stored state is
// returned with applied=false, which makes repeated confirmations of the same
// reference no-ops.
func (r *Repository) ApplyPaymentResult(ctx context.Context, orderID uint64,
	status domain.PaymentStatus) (*domain.Order, bool, error) {
	var order *domain.Order
	applied := false

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		sql, args, err := r.db.QueryBuilder.
			Select(orderColumns).
			From("orders").
			Where(sq.Eq{"id": orderID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}

		order, err = scanOrder(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			return err
		}

		if order.PaymentStatus == domain.PaymentStatusSuccess {
			return nil
		}

		order.PaymentStatus = status
		if status == domain.PaymentStatusSuccess && !order.Terminal() {
			order.Status = domain.OrderStatusCompleted
		}

		sql, args, err = r.db.QueryBuilder.
			Update("orders").
			Set("payment_status", order.PaymentStatus).
			Set("status", order.Status).
			Where(sq.Eq{"id": orderID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return order, applied, nil
}

// ReleaseOrderAccounts reverts an order's reserved accounts to the available
// pool and restores the product stock count. Used by order cancellation.
func (r *Repository) ReleaseOrderAccounts(ctx context.Context, orderID uint64) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var productID uint64
		sql, args, err := r.db.QueryBuilder.
			Select("product_id").
			From("orders").
			Where(sq.Eq{"id": orderID}).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&productID); err != nil {
			return err
		}

		// Same lock order as CreateOrder: product row first.
		if _, err := tx.Exec(ctx,
			`SELECT id FROM products WHERE id = $1 FOR UPDATE`, productID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE product_accounts SET status = $1
			WHERE status = $2 AND id IN (
				SELECT account_id FROM order_accounts WHERE order_id = $3
			)`,
			domain.AccountStatusAvailable, domain.AccountStatusReserved, orderID)
		if err != nil {
			return err
		}

		released := tag.RowsAffected()
		if released == 0 {
			return nil
		}

		sql, args, err = r.db.QueryBuilder.
			Update("products").
			Set("stock_count", sq.Expr("stock_count + ?", released)).
			Where(sq.Eq{"id": productID}).
			ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
}
