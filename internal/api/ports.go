package api

import (
	"context"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	storedomain "github.com/dwikikusuma/storefront/internal/store/domain"
)

// Narrow views of the app services, so handlers can be exercised with
// fakes.

type StoreService interface {
	GetBySlug(ctx context.Context, slug string) (storedomain.Store, error)
}

type CartService interface {
	GetOrCreate(ctx context.Context, customerID, storeID string) (cartdomain.Cart, error)
	View(ctx context.Context, customerID, storeID string) (cartapp.CartView, error)
	AddItem(ctx context.Context, cartID string, item cartdomain.CartItem) error
	SetItemQuantity(ctx context.Context, cartID string, item cartdomain.CartItem) error
	RemoveItem(ctx context.Context, cartID, productID string) error
}

type CheckoutService interface {
	Quote(ctx context.Context, customerID, storeSlug string) (checkoutdomain.Quote, error)
	Preview(ctx context.Context, storeSlug string, addr checkoutdomain.Address) (checkoutapp.ZoneSelection, error)
	Checkout(ctx context.Context, req checkoutdomain.CheckoutRequest) (checkoutdomain.CheckoutResult, error)
}

type OrderService interface {
	Get(ctx context.Context, id string) (orderdomain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]orderdomain.Order, error)
	Advance(ctx context.Context, id string, next orderdomain.Status) (orderdomain.Order, error)
}
