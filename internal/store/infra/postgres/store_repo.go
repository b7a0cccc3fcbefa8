package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dwikikusuma/storefront/internal/store/app"
	"github.com/dwikikusuma/storefront/internal/store/domain"
	"github.com/google/uuid"
)

type StoreRepo struct {
	db *sql.DB
}

func NewStoreRepo(db *sql.DB) *StoreRepo {
	return &StoreRepo{db: db}
}

const storeColumns = `id, name, slug, latitude, longitude, created_at, updated_at`

func (r *StoreRepo) Get(ctx context.Context, id string) (domain.Store, error) {
	storeUUID, err := uuid.Parse(id)
	if err != nil {
		return domain.Store{}, app.ErrInvalidInput
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE id = $1`, storeUUID)
	return scanStore(row)
}

func (r *StoreRepo) GetBySlug(ctx context.Context, slug string) (domain.Store, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE slug = $1`, slug)
	return scanStore(row)
}

func (r *StoreRepo) ListZones(ctx context.Context, storeID string) ([]domain.DeliveryZone, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return nil, app.ErrInvalidInput
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, store_id, radius_km, fee_amount, created_at
		   FROM delivery_zones
		  WHERE store_id = $1
		  ORDER BY radius_km ASC, created_at ASC, id ASC`, storeUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []domain.DeliveryZone
	for rows.Next() {
		var (
			zoneID, zoneStoreID uuid.UUID
			z                   domain.DeliveryZone
			feeAmount           int64
		)
		if err := rows.Scan(&zoneID, &zoneStoreID, &z.RadiusKm, &feeAmount, &z.CreatedAt); err != nil {
			return nil, err
		}
		z.ID = zoneID.String()
		z.StoreID = zoneStoreID.String()
		z.Fee = domain.Money{Currency: "BRL", Amount: feeAmount}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

func scanStore(row *sql.Row) (domain.Store, error) {
	var (
		id uuid.UUID
		s  domain.Store
	)
	err := row.Scan(&id, &s.Name, &s.Slug, &s.Location.Latitude, &s.Location.Longitude, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Store{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Store{}, err
	}
	s.ID = id.String()
	return s, nil
}
