package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrDataNotFound},
		{"unique violation", pgError(pgerrcode.UniqueViolation), domain.ErrConflictingData},
		{"foreign key violation", pgError(pgerrcode.ForeignKeyViolation), domain.ErrConflictingData},
		{"lock not available", pgError(pgerrcode.LockNotAvailable), domain.ErrRowBusy},
		{"statement canceled by lock timeout", pgError(pgerrcode.QueryCanceled), domain.ErrRowBusy},
		{"wrapped pg error", fmt.Errorf("exec: %w", pgError(pgerrcode.LockNotAvailable)), domain.ErrRowBusy},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrDataNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := classify(test.err)
			if test.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, test.want)
		})
	}
}

func TestClassify_UnknownErrorPassesThrough(t *testing.T) {
	unknown := errors.New("connection refused")
	assert.Equal(t, unknown, classify(unknown))
}
