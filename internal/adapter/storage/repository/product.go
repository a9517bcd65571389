package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
)

func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product,
	accounts []*domain.Account) (*domain.Product, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		productSt := r.db.QueryBuilder.
			Insert("products").
			Columns("name", "category", "followers", "stock_count", "price", "tutorial_link", "status").
			Values(product.Name, product.Category, product.Followers, len(accounts),
				product.Price, product.TutorialLink, product.Status).
			Suffix("RETURNING id, created_at, updated_at")

		sql, args, err := productSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return err
		}

		accountSt := r.db.QueryBuilder.
			Insert("product_accounts").
			Columns("product_id", "username", "password", "status")
		for _, a := range accounts {
			accountSt = accountSt.Values(product.ID, a.Username, a.Password, a.Status)
		}

		sql, args, err = accountSt.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
	if err != nil {
		return nil, err
	}

	product.StockCount = len(accounts)
	return product, nil
}

func (r *Repository) ReadProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "category", "followers", "stock_count", "price",
			"tutorial_link", "status", "created_at", "updated_at").
		From("products").
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Followers,
		&product.StockCount,
		&product.Price,
		&product.TutorialLink,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, classify(err)
	}

	return &product, nil
}

func (r *Repository) ListProducts(ctx context.Context, page port.Page,
	search string) ([]*domain.Product, int, error) {
	where := sq.And{}
	if search != "" {
		where = append(where, sq.ILike{"name": "%" + search + "%"})
	}

	countSt := r.db.QueryBuilder.Select("count(*)").From("products")
	listSt := r.db.QueryBuilder.
		Select("id", "name", "category", "followers", "stock_count", "price",
			"tutorial_link", "status", "created_at", "updated_at").
		From("products").
		OrderBy("created_at DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset()))
	if len(where) > 0 {
		countSt = countSt.Where(where)
		listSt = listSt.Where(where)
	}

	sql, args, err := countSt.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	sql, args, err = listSt.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	list := make([]*domain.Product, 0)
	for rows.Next() {
		product := domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&product.Followers,
			&product.StockCount,
			&product.Price,
			&product.TutorialLink,
			&product.Status,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, productID uint64,
	update domain.ProductUpdate) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Update("products").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": productID})

	if update.Name != nil {
		statement = statement.Set("name", *update.Name)
	}
	if update.Category != nil {
		statement = statement.Set("category", *update.Category)
	}
	if update.Followers != nil {
		statement = statement.Set("followers", *update.Followers)
	}
	if update.Price != nil {
		statement = statement.Set("price", *update.Price)
	}
	if update.TutorialLink != nil {
		statement = statement.Set("tutorial_link", *update.TutorialLink)
	}
	if update.Status != nil {
		statement = statement.Set("status", *update.Status)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, classify(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}

	return r.ReadProduct(ctx, productID)
}

// DeleteProduct removes a product and its credential pool. Products already
// referenced by orders cannot be removed.
func (r *Repository) DeleteProduct(ctx context.Context, productID uint64) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		sql, args, err := r.db.QueryBuilder.
			Select("count(*)").
			From("orders").
			Where(sq.Eq{"product_id": productID}).
			ToSql()
		if err != nil {
			return err
		}
		var refs int
		if err := tx.QueryRow(ctx, sql, args...).Scan(&refs); err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrProductInUse
		}

		sql, args, err = r.db.QueryBuilder.
			Delete("product_accounts").
			Where(sq.Eq{"product_id": productID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		sql, args, err = r.db.QueryBuilder.
			Delete("products").
			Where(sq.Eq{"id": productID}).
			ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrDataNotFound
		}
		return nil
	})
}

func (r *Repository) CountAvailableAccounts(ctx context.Context, productID uint64) (int, error) {
	sql, args, err := r.db.QueryBuilder.
		Select("count(*)").
		From("product_accounts").
		Where(sq.Eq{"product_id": productID, "status": domain.AccountStatusAvailable}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, classify(err)
	}
	return count, nil
}
