package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliveryapp "github.com/dwikikusuma/storefront/internal/delivery/app"
	deliverydomain "github.com/dwikikusuma/storefront/internal/delivery/domain"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

type fakeCart struct {
	mu    sync.Mutex
	items []CartItem
	err   error
}

func (f *fakeCart) GetCart(context.Context, string, string) ([]CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items, f.err
}

// take atomically consumes the cart, mirroring the tx-level clear.
func (f *fakeCart) take() []CartItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.items
	f.items = nil
	return items
}

func (f *fakeCart) set(items []CartItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
}

func (f *fakeCart) snapshot() []CartItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items
}

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]Product
}

func (f *fakeCatalog) GetProduct(_ context.Context, productID string) (Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return Product{}, errors.New("product not found")
	}
	return p, nil
}

func (f *fakeCatalog) setPrice(productID string, amount int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[productID]
	p.Amount = amount
	f.products[productID] = p
}

type fakeStores struct {
	store Store
	zones []Zone
	err   error
}

func (f *fakeStores) GetBySlug(context.Context, string) (Store, error) {
	return f.store, f.err
}

func (f *fakeStores) ListZones(context.Context, string) ([]Zone, error) {
	return f.zones, nil
}

type fakeResolver struct {
	sel   ZoneSelection
	err   error
	calls atomic.Int32
}

func (f *fakeResolver) Resolve(context.Context, Store, []Zone, domain.Address) (ZoneSelection, error) {
	f.calls.Add(1)
	if f.err != nil {
		return ZoneSelection{}, f.err
	}
	return f.sel, nil
}

// fakeOrders behaves like the real writer: the first call consumes the
// cart and creates an order at the prices current at call time, later
// calls see an empty cart.
type fakeOrders struct {
	mu      sync.Mutex
	cart    *fakeCart
	catalog *fakeCatalog
	err     error

	created []CreatedOrder
	drafts  []OrderDraft
	nextID  int
}

func (f *fakeOrders) CreateFromCart(ctx context.Context, draft OrderDraft) (CreatedOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return CreatedOrder{}, f.err
	}
	items := f.cart.take()
	if len(items) == 0 {
		return CreatedOrder{}, ErrEmptyCart
	}

	var subtotal int64
	for _, it := range items {
		p, err := f.catalog.GetProduct(ctx, it.ProductID)
		if err != nil {
			return CreatedOrder{}, err
		}
		subtotal += p.Amount * it.Quantity
	}

	f.nextID++
	order := CreatedOrder{
		ID:        fmt.Sprintf("order-%d", f.nextID),
		Status:    "pending",
		Subtotal:  subtotal,
		Fee:       draft.FeeAmount,
		Total:     subtotal + draft.FeeAmount,
		CreatedAt: time.Now(),
	}
	f.created = append(f.created, order)
	f.drafts = append(f.drafts, draft)
	return order, nil
}

type fakeIdem struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeIdem() *fakeIdem { return &fakeIdem{values: map[string]string{}} }

func (f *fakeIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[scope+":"+key]
	return v, ok, nil
}

func (f *fakeIdem) Remember(_ context.Context, scope, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[scope+":"+key] = value
	return nil
}

var checkoutAddr = domain.Address{
	Street:  "Rua Augusta 500",
	City:    "Sao Paulo",
	State:   "SP",
	ZipCode: "01304-000",
}

type fixture struct {
	cart    *fakeCart
	catalog *fakeCatalog
	stores  *fakeStores
	zones   *fakeResolver
	orders  *fakeOrders
	idem    *fakeIdem
	svc     *Service
}

func newFixture() *fixture {
	cart := &fakeCart{items: []CartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}}
	catalog := &fakeCatalog{products: map[string]Product{
		"p1": {ID: "p1", Name: "Margherita", Currency: "BRL", Amount: 4500},
		"p2": {ID: "p2", Name: "Guarana", Currency: "BRL", Amount: 800},
	}}
	stores := &fakeStores{store: Store{ID: "store-1", Slug: "pizzaria"}}
	zones := &fakeResolver{sel: ZoneSelection{ZoneID: "zone-1", RadiusKm: 10, FeeAmount: 700, DistanceKm: 4.2}}
	orders := &fakeOrders{cart: cart, catalog: catalog}
	idem := newFakeIdem()

	return &fixture{
		cart:    cart,
		catalog: catalog,
		stores:  stores,
		zones:   zones,
		orders:  orders,
		idem:    idem,
		svc:     NewService(cart, catalog, stores, zones, orders, idem, nil, 4, time.Second),
	}
}

func TestQuote(t *testing.T) {
	t.Run("sums live prices", func(t *testing.T) {
		fx := newFixture()

		quote, err := fx.svc.Quote(context.Background(), "cust-1", "pizzaria")
		require.NoError(t, err)
		require.Len(t, quote.Lines, 2)
		assert.Equal(t, int64(2*4500+800), quote.Total.Amount)
		assert.Equal(t, "BRL", quote.Total.Currency)
	})

	t.Run("empty cart", func(t *testing.T) {
		fx := newFixture()
		fx.cart.set(nil)

		_, err := fx.svc.Quote(context.Background(), "cust-1", "pizzaria")
		assert.ErrorIs(t, err, ErrEmptyCart)
	})
}

func TestCheckout(t *testing.T) {
	req := domain.CheckoutRequest{
		CustomerID: "cust-1",
		StoreSlug:  "pizzaria",
		Address:    checkoutAddr,
	}

	t.Run("creates order with snapshot subtotal plus fee", func(t *testing.T) {
		fx := newFixture()

		res, err := fx.svc.Checkout(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "pending", res.Status)
		assert.Equal(t, int64(9800), res.Subtotal.Amount)
		assert.Equal(t, int64(700), res.DeliveryFee.Amount)
		assert.Equal(t, int64(10500), res.Total.Amount)
		assert.Equal(t, "zone-1", res.ZoneID)

		require.Len(t, fx.orders.drafts, 1)
		assert.Equal(t, "BRL", fx.orders.drafts[0].Currency)
		assert.Empty(t, fx.cart.snapshot(), "cart should be cleared")
	})

	t.Run("later price changes do not touch the created order", func(t *testing.T) {
		fx := newFixture()

		res, err := fx.svc.Checkout(context.Background(), req)
		require.NoError(t, err)

		fx.catalog.setPrice("p1", 9900)
		assert.Equal(t, int64(9800), res.Subtotal.Amount)
		assert.Equal(t, int64(9800), fx.orders.created[0].Subtotal)
	})

	t.Run("empty cart passes through unwrapped", func(t *testing.T) {
		fx := newFixture()
		fx.cart.set(nil)

		_, err := fx.svc.Checkout(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.NotErrorIs(t, err, ErrPersistence)
	})

	t.Run("empty cart wins over blocked address", func(t *testing.T) {
		fx := newFixture()
		fx.cart.set(nil)
		fx.zones.err = &deliveryapp.BlockedError{Reason: deliverydomain.BlockedOutOfRange}

		_, err := fx.svc.Checkout(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Zero(t, fx.zones.calls.Load(), "no zone resolution for an empty cart")
	})

	t.Run("blocked address aborts before persistence", func(t *testing.T) {
		fx := newFixture()
		fx.zones.err = &deliveryapp.BlockedError{Reason: deliverydomain.BlockedOutOfRange}

		_, err := fx.svc.Checkout(context.Background(), req)

		var blocked *deliveryapp.BlockedError
		require.ErrorAs(t, err, &blocked)
		assert.Equal(t, deliverydomain.BlockedOutOfRange, blocked.Reason)
		assert.Empty(t, fx.orders.created)
		assert.NotEmpty(t, fx.cart.snapshot(), "cart must survive a blocked checkout")
	})

	t.Run("storage failure wrapped as persistence error", func(t *testing.T) {
		fx := newFixture()
		fx.orders.err = errors.New("connection reset")

		_, err := fx.svc.Checkout(context.Background(), req)
		assert.ErrorIs(t, err, ErrPersistence)
	})

	t.Run("idempotent retry returns the original order", func(t *testing.T) {
		fx := newFixture()
		keyed := req
		keyed.IdempotencyKey = "k-123"

		first, err := fx.svc.Checkout(context.Background(), keyed)
		require.NoError(t, err)

		// The cart is already empty; without the key this would fail.
		second, err := fx.svc.Checkout(context.Background(), keyed)
		require.NoError(t, err)
		assert.Equal(t, first.OrderID, second.OrderID)
		require.Len(t, fx.orders.created, 1)
	})

	t.Run("concurrent checkouts create exactly one order", func(t *testing.T) {
		fx := newFixture()

		const attempts = 8
		errs := make(chan error, attempts)
		var wg sync.WaitGroup
		for n := 0; n < attempts; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := fx.svc.Checkout(context.Background(), req)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		var ok, empty int
		for err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrEmptyCart):
				empty++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, attempts-1, empty)
		assert.Len(t, fx.orders.created, 1)
	})
}
