package domain

import "time"

type Money struct {
	Currency string
	Amount   int64
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Store is a merchant tenant. The core only ever reads it; admin setup
// owns its lifecycle.
type Store struct {
	ID        string
	Name      string
	Slug      string
	Location  Coordinates
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeliveryZone is one (radius, fee) pricing tier of a store's fee
// schedule. Zones are admin-managed and read-only here.
type DeliveryZone struct {
	ID        string
	StoreID   string
	RadiusKm  float64
	Fee       Money
	CreatedAt time.Time
}
