package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/store/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("store not found")
)

type Service struct {
	repo StoreRepo
}

func NewService(repo StoreRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id string) (domain.Store, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Store{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (domain.Store, error) {
	if strings.TrimSpace(slug) == "" {
		return domain.Store{}, ErrInvalidInput
	}
	return s.repo.GetBySlug(ctx, slug)
}

// ListZones returns the store's fee schedule ordered ascending by
// (radius_km, created_at, id) so zone selection is deterministic.
func (s *Service) ListZones(ctx context.Context, storeID string) ([]domain.DeliveryZone, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListZones(ctx, storeID)
}
