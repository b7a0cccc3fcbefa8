package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/store/domain"
)

type StoreRepo interface {
	Get(ctx context.Context, id string) (domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (domain.Store, error)
	ListZones(ctx context.Context, storeID string) ([]domain.DeliveryZone, error)
}
