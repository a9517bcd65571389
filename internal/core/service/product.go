package service

import (
	"context"
	"fmt"

	"github.com/jsocialogs/socialshop/internal/core/domain"
	"github.com/jsocialogs/socialshop/internal/core/port"
	"go.uber.org/zap"
)

// CreateProduct stores a product together with its credential pool. Account
// passwords are encoded before they reach the repository; entries without a
// username or password are skipped, and the stock count is set to the number
// of accounts actually kept.
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product,
	accounts []*domain.Account) (*domain.Product, error) {
	if product.Name == "" || product.Category == "" {
		return nil, fmt.Errorf("%w: name and category are required", domain.ErrValidation)
	}
	if !product.Price.IsPos() {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: at least one account is required", domain.ErrValidation)
	}

	kept := make([]*domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.Username == "" || a.Password == "" {
			continue
		}
		encoded, err := s.cipher.Encrypt(a.Password)
		if err != nil {
			s.logger.Error("Encrypt account password", zap.Error(err))
			return nil, domain.ErrInternal
		}
		kept = append(kept, &domain.Account{
			Username: a.Username,
			Password: encoded,
			Status:   domain.AccountStatusAvailable,
		})
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: no valid accounts supplied", domain.ErrValidation)
	}

	if product.Status == "" {
		product.Status = domain.ProductStatusActive
	}
	product.StockCount = len(kept)

	created, err := s.repo.CreateProduct(ctx, product, kept)
	if err != nil {
		s.logger.Error("Create product", zap.String("name", product.Name), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, "INFO", "product created", map[string]any{
		"product_id": created.ID,
		"accounts":   len(kept),
	})

	return created, nil
}

func (s *Service) GetProduct(ctx context.Context, productID uint64) (*domain.Product, int, error) {
	product, err := s.repo.ReadProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	if product.Status != domain.ProductStatusActive {
		return nil, 0, domain.ErrDataNotFound
	}
	available, err := s.repo.CountAvailableAccounts(ctx, productID)
	if err != nil {
		s.logger.Error("Count available accounts", zap.Uint64("product", productID), zap.Error(err))
		return nil, 0, err
	}
	return product, available, nil
}

func (s *Service) ListProducts(ctx context.Context, page port.Page,
	search string) ([]*domain.Product, int, error) {
	return s.repo.ListProducts(ctx, page, search)
}

func (s *Service) UpdateProduct(ctx context.Context, productID uint64,
	update domain.ProductUpdate) (*domain.Product, error) {
	if update.Empty() {
		return nil, domain.ErrNoUpdatedData
	}
	if update.Price != nil && !update.Price.IsPos() {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	if update.Status != nil && *update.Status != domain.ProductStatusActive &&
		*update.Status != domain.ProductStatusInactive {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *update.Status)
	}
	return s.repo.UpdateProduct(ctx, productID, update)
}

func (s *Service) DeleteProduct(ctx context.Context, productID uint64) error {
	err := s.repo.DeleteProduct(ctx, productID)
	if err != nil {
		return err
	}
	s.audit.Record(ctx, "INFO", "product deleted", map[string]any{"product_id": productID})
	return nil
}
