package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, storeID, name, desc, currency string, amount int64) (domain.Product, error) {
	storeID = strings.TrimSpace(storeID)
	name = strings.TrimSpace(name)
	currency = strings.TrimSpace(currency)

	if storeID == "" || name == "" || currency == "" || amount <= 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p := domain.Product{
		StoreID:     storeID,
		Name:        name,
		Description: desc,
		Active:      true,
		Price: domain.Money{
			Currency: currency,
			Amount:   amount,
		},
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// ListActiveProducts returns the store's published menu. Inactive
// products are filtered at the storage layer.
func (s *Service) ListActiveProducts(ctx context.Context, storeID string) ([]domain.Product, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListActive(ctx, storeID)
}
