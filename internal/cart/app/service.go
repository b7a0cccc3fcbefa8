package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotFound        = errors.New("cart not found")
)

// Money mirrors the catalog's representation: integer minor units.
type Money struct {
	Currency string
	Amount   int64
}

// CartLine is the canonical joined shape of a cart item: the linked
// product always lives under Product, priced live.
type CartLine struct {
	Product   Product
	Quantity  int32
	Notes     string
	LineTotal Money
}

type CartView struct {
	CartID   string
	Lines    []CartLine
	Subtotal Money
}

type Service struct {
	repo    CartRepo
	catalog CatalogReader

	maxConcurrent int
}

func NewService(repo CartRepo, catalog CatalogReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Service{
		repo:          repo,
		catalog:       catalog,
		maxConcurrent: maxConcurrent,
	}
}

// GetOrCreate returns the customer's cart for the store, creating it on
// first use. Safe under concurrent calls for the same pair.
func (s *Service) GetOrCreate(ctx context.Context, customerID, storeID string) (domain.Cart, error) {
	return s.repo.GetOrCreate(ctx, customerID, storeID)
}

func (s *Service) Get(ctx context.Context, customerID, storeID string) (domain.Cart, error) {
	return s.repo.Get(ctx, customerID, storeID)
}

// AddItem adds qty of a product to the cart. When a line for the product
// already exists its quantity is incremented, atomically at the storage
// layer, so two tabs adding the same product never lose an update.
func (s *Service) AddItem(ctx context.Context, cartID string, item domain.CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.AddItem(ctx, cartID, item)
}

// SetItemQuantity overwrites a line's quantity. Quantities below 1 are
// rejected; use RemoveItem to delete a line.
func (s *Service) SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return s.repo.SetItemQuantity(ctx, cartID, item)
}

func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) error {
	return s.repo.RemoveItem(ctx, cartID, productID)
}

func (s *Service) Clear(ctx context.Context, cartID string) error {
	return s.repo.Clear(ctx, cartID)
}

// View joins every cart line to its product and sums price x quantity at
// the live catalog price. A customer with no cart yet gets an empty view;
// the row is only created on first add. Checkout snapshots prices
// separately; this view is a display preview and is not transactional
// with a concurrent checkout.
func (s *Service) View(ctx context.Context, customerID, storeID string) (CartView, error) {
	cart, err := s.repo.Get(ctx, customerID, storeID)
	if errors.Is(err, ErrNotFound) {
		return CartView{}, nil
	}
	if err != nil {
		return CartView{}, err
	}

	lines := make([]CartLine, len(cart.Items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range cart.Items {
		idx := idx
		g.Go(func() error {
			it := cart.Items[idx]
			product, err := s.catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lines[idx] = CartLine{
				Product:  product,
				Quantity: it.Quantity,
				Notes:    it.Notes,
				LineTotal: Money{
					Currency: product.Currency,
					Amount:   product.Amount * int64(it.Quantity),
				},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return CartView{}, err
	}

	view := CartView{CartID: cart.ID, Lines: lines}
	for _, ln := range lines {
		view.Subtotal.Amount += ln.LineTotal.Amount
		view.Subtotal.Currency = ln.LineTotal.Currency
	}
	return view, nil
}
