package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CartRepo interface {
	Get(ctx context.Context, customerID, storeID string) (domain.Cart, error)
	GetOrCreate(ctx context.Context, customerID, storeID string) (domain.Cart, error)
	AddItem(ctx context.Context, cartID string, item domain.CartItem) error
	SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) error
	RemoveItem(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
}

// CatalogReader is the narrow slice of the catalog the cart needs for
// live pricing of the view.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID       string
	Name     string
	Currency string
	Amount   int64
	Active   bool
}
