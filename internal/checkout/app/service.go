package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"golang.org/x/sync/errgroup"
)

const idempotencyScope = "checkout"

type Service struct {
	cart    CartReader
	catalog CatalogReader
	stores  StoreReader
	zones   ZoneResolver
	orders  OrderWriter
	idem    IdempotencyStore
	log     *slog.Logger

	maxConcurrent  int
	persistTimeout time.Duration
}

func NewService(
	cart CartReader,
	catalog CatalogReader,
	stores StoreReader,
	zones ZoneResolver,
	orders OrderWriter,
	idem IdempotencyStore,
	log *slog.Logger,
	maxConcurrent int,
	persistTimeout time.Duration,
) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	if persistTimeout <= 0 {
		persistTimeout = 5 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:           cart,
		catalog:        catalog,
		stores:         stores,
		zones:          zones,
		orders:         orders,
		idem:           idem,
		log:            log,
		maxConcurrent:  maxConcurrent,
		persistTimeout: persistTimeout,
	}
}

// Quote prices the cart at live catalog prices for pre-submit display.
func (s *Service) Quote(ctx context.Context, customerID, storeSlug string) (domain.Quote, error) {
	store, err := s.stores.GetBySlug(ctx, storeSlug)
	if err != nil {
		return domain.Quote{}, err
	}

	items, err := s.cart.GetCart(ctx, customerID, store.ID)
	if err != nil {
		return domain.Quote{}, err
	}
	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				UnitPrice: domain.Money{Currency: product.Currency, Amount: product.Amount},
				LineTotal: domain.Money{Currency: product.Currency, Amount: product.Amount * it.Quantity},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	var total int64
	for _, line := range lines {
		total += line.LineTotal.Amount
	}

	return domain.Quote{
		Lines: lines,
		Total: domain.Money{Currency: lines[0].LineTotal.Currency, Amount: total},
	}, nil
}

// Preview resolves the delivery zone for an address without committing
// anything, so the fee can be shown before submit.
func (s *Service) Preview(ctx context.Context, storeSlug string, addr domain.Address) (ZoneSelection, error) {
	store, err := s.stores.GetBySlug(ctx, storeSlug)
	if err != nil {
		return ZoneSelection{}, err
	}
	zones, err := s.stores.ListZones(ctx, store.ID)
	if err != nil {
		return ZoneSelection{}, err
	}
	return s.zones.Resolve(ctx, store, zones, addr)
}

// Checkout turns the cart into an order: resolve the zone, then snapshot
// prices, insert the order and clear the cart atomically. Nothing is
// persisted when any step fails.
func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResult, error) {
	if req.IdempotencyKey != "" && s.idem != nil {
		orderID, found, err := s.idem.Recall(ctx, idempotencyScope, req.IdempotencyKey)
		if err != nil {
			s.log.Warn("idempotency recall failed", slog.Any("err", err))
		} else if found {
			return domain.CheckoutResult{OrderID: orderID, Status: "pending"}, nil
		}
	}

	store, err := s.stores.GetBySlug(ctx, req.StoreSlug)
	if err != nil {
		return domain.CheckoutResult{}, err
	}

	// An empty cart fails here, before any zone work or geocoder call.
	// The transaction re-checks under the cart lock; this read just sets
	// the error precedence.
	items, err := s.cart.GetCart(ctx, req.CustomerID, store.ID)
	if err != nil {
		return domain.CheckoutResult{}, err
	}
	if len(items) == 0 {
		return domain.CheckoutResult{}, ErrEmptyCart
	}

	zones, err := s.stores.ListZones(ctx, store.ID)
	if err != nil {
		return domain.CheckoutResult{}, err
	}

	// Zone resolution happens before the transaction: geocoding is an
	// external call and must not hold database locks.
	sel, err := s.zones.Resolve(ctx, store, zones, req.Address)
	if err != nil {
		return domain.CheckoutResult{}, err
	}

	draft := OrderDraft{
		CustomerID:    req.CustomerID,
		StoreID:       store.ID,
		Address:       req.Address,
		CustomerNotes: req.CustomerNotes,
		ZoneID:        sel.ZoneID,
		FeeAmount:     sel.FeeAmount,
		Currency:      "BRL",
	}

	persistCtx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()

	created, err := s.orders.CreateFromCart(persistCtx, draft)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return domain.CheckoutResult{}, err
		}
		return domain.CheckoutResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if req.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, idempotencyScope, req.IdempotencyKey, created.ID); err != nil {
			s.log.Warn("idempotency remember failed", slog.Any("err", err), slog.String("order_id", created.ID))
		}
	}

	s.log.Info("checkout completed",
		slog.String("order_id", created.ID),
		slog.String("store_id", store.ID),
		slog.Int64("total", created.Total),
	)

	return domain.CheckoutResult{
		OrderID:     created.ID,
		Status:      created.Status,
		Subtotal:    domain.Money{Currency: draft.Currency, Amount: created.Subtotal},
		DeliveryFee: domain.Money{Currency: draft.Currency, Amount: created.Fee},
		Total:       domain.Money{Currency: draft.Currency, Amount: created.Total},
		ZoneID:      sel.ZoneID,
		CreatedAt:   created.CreatedAt,
	}, nil
}
