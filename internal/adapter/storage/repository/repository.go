package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jsocialogs/socialshop/internal/adapter/storage"
	"github.com/jsocialogs/socialshop/internal/core/domain"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

// classify maps low-level postgres failures onto the domain taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDataNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return domain.ErrConflictingData
		case pgerrcode.LockNotAvailable, pgerrcode.QueryCanceled:
			return domain.ErrRowBusy
		case pgerrcode.ForeignKeyViolation:
			return domain.ErrConflictingData
		}
	}
	return err
}

// inTx runs fn in a transaction. A lock-timeout on a contended row is retried
// once before surfacing; the retry starts a fresh transaction.
func (r *Repository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	err := classify(pgx.BeginFunc(ctx, r.db, fn))
	if errors.Is(err, domain.ErrRowBusy) {
		err = classify(pgx.BeginFunc(ctx, r.db, fn))
		if errors.Is(err, domain.ErrRowBusy) {
			return domain.ErrStorage
		}
	}
	return err
}
