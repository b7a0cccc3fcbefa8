package app

import (
	"context"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

type CartItem struct {
	ProductID string
	Quantity  int64
	Notes     string
}

type CartReader interface {
	GetCart(ctx context.Context, customerID, storeID string) ([]CartItem, error)
}

type Product struct {
	ID       string
	Name     string
	Currency string
	Amount   int64
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Store struct {
	ID        string
	Slug      string
	Latitude  float64
	Longitude float64
}

type Zone struct {
	ID        string
	RadiusKm  float64
	FeeAmount int64
	CreatedAt time.Time
}

type StoreReader interface {
	GetBySlug(ctx context.Context, slug string) (Store, error)
	ListZones(ctx context.Context, storeID string) ([]Zone, error)
}

type ZoneSelection struct {
	ZoneID     string
	RadiusKm   float64
	FeeAmount  int64
	DistanceKm float64
}

// ZoneResolver prices the delivery leg. Implementations surface blocked
// addresses and malformed addresses as their own error types, which pass
// through checkout untouched.
type ZoneResolver interface {
	Resolve(ctx context.Context, store Store, zones []Zone, addr domain.Address) (ZoneSelection, error)
}

type OrderDraft struct {
	CustomerID    string
	StoreID       string
	Address       domain.Address
	CustomerNotes string
	ZoneID        string
	FeeAmount     int64
	Currency      string
}

type CreatedOrder struct {
	ID        string
	Status    string
	Subtotal  int64
	Fee       int64
	Total     int64
	CreatedAt time.Time
}

// OrderWriter persists a checkout. CreateFromCart must, in a single
// transaction: lock the cart, snapshot every line's current product
// price, insert the order and its items, and clear the snapshotted cart
// lines. An empty (or already-emptied) cart fails with ErrEmptyCart and
// commits nothing.
type OrderWriter interface {
	CreateFromCart(ctx context.Context, draft OrderDraft) (CreatedOrder, error)
}

// IdempotencyStore lets a caller retry checkout with the same key and
// get the original order back instead of a duplicate.
type IdempotencyStore interface {
	Recall(ctx context.Context, scope, key string) (string, bool, error)
	Remember(ctx context.Context, scope, key, value string) error
}
