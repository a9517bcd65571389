package service

import (
	"context"
	"errors"

	"github.com/jsocialogs/socialshop/internal/core/domain"
)

// GetCustomerStats returns the running totals for a customer. A customer who
// has never ordered gets an empty summary rather than an error.
func (s *Service) GetCustomerStats(ctx context.Context, email string) (*domain.CustomerStats, error) {
	stats, err := s.repo.ReadCustomerStats(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return &domain.CustomerStats{CustomerEmail: email}, nil
		}
		return nil, err
	}
	return stats, nil
}
