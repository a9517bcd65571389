package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jsocialogs/socialshop/internal/core/domain"
)

func (r *Repository) CreatePayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	sql, args, err := r.db.QueryBuilder.
		Insert("payments").
		Columns("order_id", "payment_reference", "amount", "status").
		Values(payment.OrderID, payment.PaymentReference, payment.Amount, payment.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, classify(err)
	}

	return payment, nil
}

// UpdatePaymentResult records the verification outcome and the raw gateway
// body for a reference. Callers treat its failure as non-critical.
func (r *Repository) UpdatePaymentResult(ctx context.Context, reference string,
	status domain.PaymentStatus, gatewayResponse []byte) error {
	sql, args, err := r.db.QueryBuilder.
		Update("payments").
		Set("status", status).
		Set("gateway_response", gatewayResponse).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"payment_reference": reference}).
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
