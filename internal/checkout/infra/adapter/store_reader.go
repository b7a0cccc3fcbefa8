package adapter

import (
	"context"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	storeapp "github.com/dwikikusuma/storefront/internal/store/app"
)

type StoreServiceReader struct {
	svc *storeapp.Service
}

func NewStoreServiceReader(svc *storeapp.Service) *StoreServiceReader {
	return &StoreServiceReader{svc: svc}
}

func (r *StoreServiceReader) GetBySlug(ctx context.Context, slug string) (checkoutapp.Store, error) {
	s, err := r.svc.GetBySlug(ctx, slug)
	if err != nil {
		return checkoutapp.Store{}, err
	}
	return checkoutapp.Store{
		ID:        s.ID,
		Slug:      s.Slug,
		Latitude:  s.Location.Latitude,
		Longitude: s.Location.Longitude,
	}, nil
}

func (r *StoreServiceReader) ListZones(ctx context.Context, storeID string) ([]checkoutapp.Zone, error) {
	zones, err := r.svc.ListZones(ctx, storeID)
	if err != nil {
		return nil, err
	}

	out := make([]checkoutapp.Zone, 0, len(zones))
	for _, z := range zones {
		out = append(out, checkoutapp.Zone{
			ID:        z.ID,
			RadiusKm:  z.RadiusKm,
			FeeAmount: z.Fee.Amount,
			CreatedAt: z.CreatedAt,
		})
	}
	return out, nil
}
