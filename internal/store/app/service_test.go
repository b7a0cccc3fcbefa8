package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/store/domain"
)

type fakeStoreRepo struct {
	stores map[string]domain.Store
	zones  map[string][]domain.DeliveryZone
}

func (f *fakeStoreRepo) Get(_ context.Context, id string) (domain.Store, error) {
	for _, s := range f.stores {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Store{}, ErrNotFound
}

func (f *fakeStoreRepo) GetBySlug(_ context.Context, slug string) (domain.Store, error) {
	s, ok := f.stores[slug]
	if !ok {
		return domain.Store{}, ErrNotFound
	}
	return s, nil
}

func (f *fakeStoreRepo) ListZones(_ context.Context, storeID string) ([]domain.DeliveryZone, error) {
	return f.zones[storeID], nil
}

func newStoreService() *Service {
	return NewService(&fakeStoreRepo{
		stores: map[string]domain.Store{
			"pizzaria": {ID: "store-1", Slug: "pizzaria", Name: "Pizzaria"},
		},
		zones: map[string][]domain.DeliveryZone{
			"store-1": {{ID: "z1", StoreID: "store-1", RadiusKm: 5,
				Fee: domain.Money{Currency: "BRL", Amount: 500}, CreatedAt: time.Now()}},
		},
	})
}

func TestGetBySlug(t *testing.T) {
	svc := newStoreService()

	t.Run("found", func(t *testing.T) {
		s, err := svc.GetBySlug(context.Background(), "pizzaria")
		require.NoError(t, err)
		assert.Equal(t, "store-1", s.ID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.GetBySlug(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank slug", func(t *testing.T) {
		_, err := svc.GetBySlug(context.Background(), "  ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListZonesValidatesID(t *testing.T) {
	svc := newStoreService()

	_, err := svc.ListZones(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	zones, err := svc.ListZones(context.Background(), "store-1")
	require.NoError(t, err)
	assert.Len(t, zones, 1)
}
